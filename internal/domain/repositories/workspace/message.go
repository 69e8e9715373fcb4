package workspace

import (
	"context"
	"time"

	models "threadline/internal/domain/models/workspace"
)

// MessageRepository defines data access operations for messages
type MessageRepository interface {
	// Create inserts a single message with all fields as given
	Create(ctx context.Context, msg *models.Message) error

	// CreateMany inserts messages as given, stamping path and conversationID
	CreateMany(ctx context.Context, msgs []models.Message, path, conversationID string) error

	// GetByID retrieves a message by ID
	// Returns domain.ErrNotFound if not found, domain.ErrPayloadDecode if
	// the stored content is corrupt
	GetByID(ctx context.Context, id string) (*models.Message, error)

	// ListByConversation lists messages of a conversation in creation order
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)

	// CountByConversation counts messages of a conversation
	CountByConversation(ctx context.Context, conversationID string) (int, error)

	// UpdateContent persists content, updated_at and end_time
	UpdateContent(ctx context.Context, msg *models.Message) error

	// ReplaceContent overwrites content and updated_at only
	ReplaceContent(ctx context.Context, id string, content models.Content, updatedAt time.Time) error

	// UpdateStatus persists status, updated_at and end_time
	UpdateStatus(ctx context.Context, msg *models.Message) error

	// SetConversationPath sets conversation_path on every message of a conversation
	SetConversationPath(ctx context.Context, conversationID, path string) (int64, error)

	// RewritePathPrefix replaces oldPrefix with newPrefix on every message
	// whose conversation_path is a strict descendant of oldPrefix
	RewritePathPrefix(ctx context.Context, oldPrefix, newPrefix string) (int64, error)

	// Delete deletes a single message
	Delete(ctx context.Context, id string) error

	// DeleteByConversation deletes every message of a conversation
	DeleteByConversation(ctx context.Context, conversationID string) (int64, error)

	// DeleteByPath deletes every message whose conversation_path is a
	// strict descendant of pathPrefix
	DeleteByPath(ctx context.Context, pathPrefix string) (int64, error)
}
