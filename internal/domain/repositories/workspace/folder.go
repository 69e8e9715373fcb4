package workspace

import (
	"context"

	models "threadline/internal/domain/models/workspace"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a new folder. ID and timestamps must be set.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	// Returns domain.ErrNotFound if not found
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// Update persists name, parent, path and updated_at of a folder
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes a single folder row
	Delete(ctx context.Context, id string) error

	// ListRoot lists folders without a parent
	ListRoot(ctx context.Context) ([]models.Folder, error)

	// ListChildren lists immediate child folders
	ListChildren(ctx context.Context, parentID string) ([]models.Folder, error)

	// ListAll lists every folder ordered by path
	ListAll(ctx context.Context) ([]models.Folder, error)

	// RewritePathPrefix replaces oldPath with newPath on every strict
	// descendant of oldPath. Returns rows affected.
	RewritePathPrefix(ctx context.Context, oldPath, newPath string) (int64, error)

	// DeleteDescendants deletes every strict descendant of path
	DeleteDescendants(ctx context.Context, path string) (int64, error)
}
