package handler

import (
	"log/slog"
	"net/http"

	wsSvc "threadline/internal/domain/services/workspace"
	"threadline/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService wsSvc.FolderService
	searchService wsSvc.SearchService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService wsSvc.FolderService, searchService wsSvc.SearchService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		searchService: searchService,
		logger:        logger,
	}
}

// UpdateFolderRequest is the PATCH body. Absent fields keep their value;
// a null parent_id moves the folder to the root.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name,omitempty"`
	ParentID httputil.OptionalString `json:"parent_id"`
}

// CreateFolder creates a new folder
// POST /api/folders
// Returns 201 if created, 409 with the clashing kind and path otherwise
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req wsSvc.CreateFolderRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// ListRootFolders lists folders with no parent
// GET /api/folders
func (h *FolderHandler) ListRootFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folderService.ListRootFolders(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// GetFolder retrieves a folder
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// ListChildren lists the direct subfolders of a folder
// GET /api/folders/{id}/children
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}

	folders, err := h.folderService.ListChildren(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// UpdateFolder renames and/or moves a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}

	var req UpdateFolderRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	patch := &wsSvc.PatchFolderRequest{Name: req.Name}
	patch.ParentID, patch.MoveParent = req.ParentID.Unpack()

	folder, err := h.folderService.PatchFolder(r.Context(), id, patch)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder and its subtree
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchFolders finds folders by name
// GET /api/folders/search?q=
func (h *FolderHandler) SearchFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.searchService.SearchFolders(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}
