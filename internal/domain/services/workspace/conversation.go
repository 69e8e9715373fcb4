package workspace

import (
	"context"

	models "threadline/internal/domain/models/workspace"
)

// ConversationService handles conversation business logic
type ConversationService interface {
	// CreateConversation creates a conversation inside an optional folder
	CreateConversation(ctx context.Context, req *CreateConversationRequest) (*models.Conversation, error)

	// GetConversation retrieves a conversation by ID
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)

	// GetConversationByPath retrieves a conversation by its exact path
	GetConversationByPath(ctx context.Context, path string) (*models.Conversation, error)

	// UpdateConversation replaces title, folder, icon, info and template.
	// A changed path is propagated to the conversation's messages.
	UpdateConversation(ctx context.Context, id string, req *UpdateConversationRequest) (*models.Conversation, error)

	// PatchConversation merges patch onto the current row and applies it
	// with UpdateConversation, reading and writing in one transaction
	PatchConversation(ctx context.Context, id string, patch *PatchConversationRequest) (*models.Conversation, error)

	// DeleteConversation removes the conversation and its messages
	DeleteConversation(ctx context.Context, id string) error

	// ClearConversation removes every message but keeps the conversation
	ClearConversation(ctx context.Context, id string) error

	// ListWithoutFolder lists root-level conversations
	ListWithoutFolder(ctx context.Context) ([]models.Conversation, error)

	// ListByFolder lists conversations directly inside a folder
	ListByFolder(ctx context.Context, folderID string) ([]models.Conversation, error)
}

// CreateConversationRequest represents a conversation creation request
type CreateConversationRequest struct {
	Title      string  `json:"title"`
	FolderID   *string `json:"folder_id,omitempty"`
	Icon       string  `json:"icon,omitempty"`
	Info       *string `json:"info,omitempty"`
	TemplateID string  `json:"template_id,omitempty"`
}

// UpdateConversationRequest is a full replacement of the mutable fields
type UpdateConversationRequest struct {
	Title      string  `json:"title"`
	FolderID   *string `json:"folder_id"`
	Icon       string  `json:"icon"`
	Info       *string `json:"info"`
	TemplateID string  `json:"template_id"`
}

// PatchConversationRequest changes only the fields it carries. FolderID
// applies when MoveFolder is set and Info when SetInfo is set; nil then
// means root and cleared respectively.
type PatchConversationRequest struct {
	Title      *string
	FolderID   *string
	MoveFolder bool
	Icon       *string
	Info       *string
	SetInfo    bool
	TemplateID *string
}

// Merge builds the full update request from the current conversation
func (p *PatchConversationRequest) Merge(current *models.Conversation) *UpdateConversationRequest {
	req := &UpdateConversationRequest{
		Title:      current.Title,
		FolderID:   current.FolderID,
		Icon:       current.Icon,
		Info:       current.Info,
		TemplateID: current.TemplateID,
	}
	if p.Title != nil {
		req.Title = *p.Title
	}
	if p.MoveFolder {
		req.FolderID = p.FolderID
	}
	if p.Icon != nil {
		req.Icon = *p.Icon
	}
	if p.SetInfo {
		req.Info = p.Info
	}
	if p.TemplateID != nil {
		req.TemplateID = *p.TemplateID
	}
	return req
}
