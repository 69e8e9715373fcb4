package workspace

import (
	"context"

	models "threadline/internal/domain/models/workspace"
)

// ConversationRepository defines data access operations for conversations
type ConversationRepository interface {
	// Create inserts a new conversation. ID and timestamps must be set.
	Create(ctx context.Context, conv *models.Conversation) error

	// GetByID retrieves a conversation by ID
	// Returns domain.ErrNotFound if not found
	GetByID(ctx context.Context, id string) (*models.Conversation, error)

	// GetByPath retrieves a conversation by its exact path
	GetByPath(ctx context.Context, path string) (*models.Conversation, error)

	// Update persists every mutable field including path
	Update(ctx context.Context, conv *models.Conversation) error

	// Delete deletes a single conversation row
	Delete(ctx context.Context, id string) error

	// ListWithoutFolder lists root-level conversations
	ListWithoutFolder(ctx context.Context) ([]models.Conversation, error)

	// ListByFolder lists conversations directly inside a folder
	ListByFolder(ctx context.Context, folderID string) ([]models.Conversation, error)

	// ListAll lists every conversation ordered by path
	ListAll(ctx context.Context) ([]models.Conversation, error)

	// RewritePathPrefix replaces oldPath with newPath on every strict
	// descendant of oldPath. Returns rows affected.
	RewritePathPrefix(ctx context.Context, oldPath, newPath string) (int64, error)

	// DeleteSubtree deletes every conversation at or under path
	DeleteSubtree(ctx context.Context, path string) (int64, error)
}
