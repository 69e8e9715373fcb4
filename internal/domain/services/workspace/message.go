package workspace

import (
	"context"

	models "threadline/internal/domain/models/workspace"
)

// MessageService handles message business logic
type MessageService interface {
	// InsertMessage stores a message stamped with the conversation's current path
	InsertMessage(ctx context.Context, req *InsertMessageRequest) (*models.Message, error)

	// InsertMany stores a batch under one conversation, keeping caller timestamps
	InsertMany(ctx context.Context, msgs []models.Message, conversationPath, conversationID string) error

	// AddContent appends a streamed delta and refreshes updated and end times
	AddContent(ctx context.Context, id, delta string) (*models.Message, error)

	// UpdateStatus sets the status and refreshes updated and end times
	UpdateStatus(ctx context.Context, id string, status string) error

	// UpdateContent replaces content after a manual edit; end time is kept
	UpdateContent(ctx context.Context, id string, content models.Content) error

	// GetMessage retrieves a message by ID
	GetMessage(ctx context.Context, id string) (*models.Message, error)

	// ListByConversation lists a conversation's messages in creation order
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)

	// CountByConversation counts a conversation's messages
	CountByConversation(ctx context.Context, conversationID string) (int, error)

	// DeleteMessage removes one message
	DeleteMessage(ctx context.Context, id string) error

	// DeleteByConversation removes every message of a conversation
	DeleteByConversation(ctx context.Context, conversationID string) (int64, error)

	// DeleteByPath removes messages whose conversation lies strictly under path
	DeleteByPath(ctx context.Context, path string) (int64, error)

	// UpdatePath rebases conversation_path for messages strictly under oldPrefix
	UpdatePath(ctx context.Context, oldPrefix, newPrefix string) (int64, error)
}

// InsertMessageRequest represents a new message
type InsertMessageRequest struct {
	ConversationID string         `json:"conversation_id"`
	Role           string         `json:"role"`
	Content        models.Content `json:"content"`
	Status         string         `json:"status,omitempty"` // defaults to complete
}
