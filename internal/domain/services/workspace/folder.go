package workspace

import (
	"context"

	models "threadline/internal/domain/models/workspace"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a folder under an optional parent
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder by ID
	GetFolder(ctx context.Context, id string) (*models.Folder, error)

	// RenameOrMoveFolder sets the folder's name and parent. When the resulting
	// path changes, every folder, conversation and message beneath the old path
	// is rebased in the same transaction.
	RenameOrMoveFolder(ctx context.Context, id string, req *RenameOrMoveFolderRequest) (*models.Folder, error)

	// PatchFolder merges patch onto the current row and applies it with
	// RenameOrMoveFolder, reading and writing in one transaction
	PatchFolder(ctx context.Context, id string, patch *PatchFolderRequest) (*models.Folder, error)

	// DeleteFolder removes the folder and its whole subtree
	DeleteFolder(ctx context.Context, id string) error

	// ListRootFolders lists folders with no parent
	ListRootFolders(ctx context.Context) ([]models.Folder, error)

	// ListChildren lists the direct subfolders of a folder
	ListChildren(ctx context.Context, parentID string) ([]models.Folder, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // null for root folders
}

// RenameOrMoveFolderRequest carries the full new identity of a folder.
// Both fields are applied; a nil ParentID moves the folder to the root.
type RenameOrMoveFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// PatchFolderRequest changes only the fields it carries. ParentID applies
// when MoveParent is set, and a nil ParentID then means the root.
type PatchFolderRequest struct {
	Name       *string
	ParentID   *string
	MoveParent bool
}

// Merge builds the full rename/move request from the current folder
func (p *PatchFolderRequest) Merge(current *models.Folder) *RenameOrMoveFolderRequest {
	req := &RenameOrMoveFolderRequest{Name: current.Name, ParentID: current.ParentID}
	if p.Name != nil {
		req.Name = *p.Name
	}
	if p.MoveParent {
		req.ParentID = p.ParentID
	}
	return req
}
