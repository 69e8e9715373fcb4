package handler

import (
	"io"
	"log/slog"
	"net/http"

	"threadline/internal/config"
	wsSvc "threadline/internal/domain/services/workspace"
	"threadline/internal/httputil"
)

// ConversationHandler handles conversation HTTP requests
type ConversationHandler struct {
	convService    wsSvc.ConversationService
	searchService  wsSvc.SearchService
	archiveService wsSvc.ArchiveService
	logger         *slog.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(
	convService wsSvc.ConversationService,
	searchService wsSvc.SearchService,
	archiveService wsSvc.ArchiveService,
	logger *slog.Logger,
) *ConversationHandler {
	return &ConversationHandler{
		convService:    convService,
		searchService:  searchService,
		archiveService: archiveService,
		logger:         logger,
	}
}

// UpdateConversationRequest is the PATCH body. Absent fields keep their
// value; null folder_id moves to the root and null info clears it.
type UpdateConversationRequest struct {
	Title      *string                 `json:"title,omitempty"`
	FolderID   httputil.OptionalString `json:"folder_id"`
	Icon       *string                 `json:"icon,omitempty"`
	Info       httputil.OptionalString `json:"info"`
	TemplateID *string                 `json:"template_id,omitempty"`
}

// CreateConversation creates a new conversation
// POST /api/conversations
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req wsSvc.CreateConversationRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	conv, err := h.convService.CreateConversation(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, conv)
}

// ListConversations lists conversations in a folder, or those without one
// GET /api/conversations?folder_id=
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folder_id")

	var err error
	var result interface{}
	if folderID == "" {
		result, err = h.convService.ListWithoutFolder(r.Context())
	} else {
		result, err = h.convService.ListByFolder(r.Context(), folderID)
	}
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetConversationByPath finds a conversation by its exact path
// GET /api/conversations/by-path?path=
func (h *ConversationHandler) GetConversationByPath(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		httputil.RespondError(w, http.StatusBadRequest, "path is required")
		return
	}

	conv, err := h.convService.GetConversationByPath(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// SearchConversations finds conversations by title or info
// GET /api/conversations/search?q=
func (h *ConversationHandler) SearchConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.searchService.SearchConversations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, convs)
}

// GetConversation retrieves a conversation
// GET /api/conversations/{id}
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Conversation")
	if !ok {
		return
	}

	conv, err := h.convService.GetConversation(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// UpdateConversation merges the PATCH body onto the current row
// PATCH /api/conversations/{id}
func (h *ConversationHandler) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Conversation")
	if !ok {
		return
	}

	var req UpdateConversationRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	patch := &wsSvc.PatchConversationRequest{
		Title:      req.Title,
		Icon:       req.Icon,
		TemplateID: req.TemplateID,
	}
	patch.FolderID, patch.MoveFolder = req.FolderID.Unpack()
	patch.Info, patch.SetInfo = req.Info.Unpack()

	conv, err := h.convService.PatchConversation(r.Context(), id, patch)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// DeleteConversation deletes a conversation and its messages
// DELETE /api/conversations/{id}
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Conversation")
	if !ok {
		return
	}

	if err := h.convService.DeleteConversation(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearConversation removes every message of a conversation
// POST /api/conversations/{id}/clear
func (h *ConversationHandler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Conversation")
	if !ok {
		return
	}

	if err := h.convService.ClearConversation(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportConversation returns the conversation as a YAML archive
// GET /api/conversations/{id}/export
func (h *ConversationHandler) ExportConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Conversation")
	if !ok {
		return
	}

	data, err := h.archiveService.Export(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="conversation.yaml"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ImportConversation recreates a conversation from a YAML archive body
// POST /api/import?folder_id=
func (h *ConversationHandler) ImportConversation(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxArchiveSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "archive too large")
		return
	}

	var folderID *string
	if id := r.URL.Query().Get("folder_id"); id != "" {
		folderID = &id
	}

	conv, err := h.archiveService.Import(r.Context(), data, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, conv)
}
