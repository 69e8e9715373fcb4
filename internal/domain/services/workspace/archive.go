package workspace

import (
	"context"
	"time"

	models "threadline/internal/domain/models/workspace"
)

// ArchiveService moves conversations in and out of the store as YAML
type ArchiveService interface {
	// Export serializes a conversation and its messages
	Export(ctx context.Context, conversationID string) ([]byte, error)

	// Import recreates an exported conversation inside folderID (nil for root)
	Import(ctx context.Context, data []byte, folderID *string) (*models.Conversation, error)
}

// ConversationArchive is the YAML document produced by Export
type ConversationArchive struct {
	Version      int                  `yaml:"version"`
	Conversation ArchivedConversation `yaml:"conversation"`
	Messages     []ArchivedMessage    `yaml:"messages"`
}

// ArchivedConversation holds the portable conversation fields
type ArchivedConversation struct {
	Title      string  `yaml:"title"`
	Icon       string  `yaml:"icon,omitempty"`
	Info       *string `yaml:"info,omitempty"`
	TemplateID string  `yaml:"template_id,omitempty"`
}

// ArchivedMessage holds the portable message fields
type ArchivedMessage struct {
	Role      string             `yaml:"role"`
	Status    string             `yaml:"status"`
	Kind      models.ContentKind `yaml:"kind"`
	Text      string             `yaml:"text,omitempty"`
	Source    string             `yaml:"source,omitempty"`
	Data      string             `yaml:"data,omitempty"`
	CreatedAt time.Time          `yaml:"created_at"`
	UpdatedAt time.Time          `yaml:"updated_at,omitempty"` // EndTime when absent
	StartTime time.Time          `yaml:"start_time"`
	EndTime   time.Time          `yaml:"end_time"`
}
