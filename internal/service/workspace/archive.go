package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"threadline/internal/config"
	"threadline/internal/domain"
	models "threadline/internal/domain/models/workspace"
	"threadline/internal/domain/repositories"
	wsSvc "threadline/internal/domain/services/workspace"
)

// archiveVersion is the ConversationArchive format written by Export
const archiveVersion = 1

type archiveService struct {
	convService wsSvc.ConversationService
	msgService  wsSvc.MessageService
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewArchiveService creates a YAML import/export service
func NewArchiveService(
	convService wsSvc.ConversationService,
	msgService wsSvc.MessageService,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) wsSvc.ArchiveService {
	return &archiveService{
		convService: convService,
		msgService:  msgService,
		txManager:   txManager,
		logger:      logger,
	}
}

// Export serializes a conversation and its messages in creation order
func (s *archiveService) Export(ctx context.Context, conversationID string) ([]byte, error) {
	conv, err := s.convService.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.msgService.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	archive := wsSvc.ConversationArchive{
		Version: archiveVersion,
		Conversation: wsSvc.ArchivedConversation{
			Title:      conv.Title,
			Icon:       conv.Icon,
			Info:       conv.Info,
			TemplateID: conv.TemplateID,
		},
		Messages: make([]wsSvc.ArchivedMessage, 0, len(msgs)),
	}
	for _, msg := range msgs {
		archive.Messages = append(archive.Messages, wsSvc.ArchivedMessage{
			Role:      msg.Role,
			Status:    msg.Status,
			Kind:      msg.Content.Kind,
			Text:      msg.Content.Text,
			Source:    msg.Content.Source,
			Data:      string(msg.Content.Data),
			CreatedAt: msg.CreatedAt,
			UpdatedAt: msg.UpdatedAt,
			StartTime: msg.StartTime,
			EndTime:   msg.EndTime,
		})
	}

	out, err := yaml.Marshal(&archive)
	if err != nil {
		return nil, fmt.Errorf("encode archive: %w", err)
	}

	s.logger.Info("conversation exported",
		"id", conv.ID,
		"messages", len(msgs),
		"bytes", len(out),
	)
	return out, nil
}

// Import recreates an archived conversation inside folderID. The
// conversation and its messages are written in one transaction; message
// timestamps come from the archive.
func (s *archiveService) Import(ctx context.Context, data []byte, folderID *string) (*models.Conversation, error) {
	if len(data) > config.MaxArchiveSize {
		return nil, &domain.ValidationError{Message: "archive exceeds maximum size"}
	}

	var archive wsSvc.ConversationArchive
	if err := yaml.Unmarshal(data, &archive); err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid archive: %v", err)}
	}
	if archive.Version != archiveVersion {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unsupported archive version %d", archive.Version)}
	}

	msgs := make([]models.Message, 0, len(archive.Messages))
	for i, am := range archive.Messages {
		content := models.Content{
			Kind:   am.Kind,
			Text:   am.Text,
			Source: am.Source,
		}
		if am.Data != "" {
			if !json.Valid([]byte(am.Data)) {
				return nil, &domain.ValidationError{Message: fmt.Sprintf("message %d: data is not valid JSON", i)}
			}
			content.Data = json.RawMessage(am.Data)
		}
		updatedAt := am.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = am.EndTime
		}
		msgs = append(msgs, models.Message{
			Role:      am.Role,
			Status:    am.Status,
			Content:   content,
			CreatedAt: am.CreatedAt,
			UpdatedAt: updatedAt,
			StartTime: am.StartTime,
			EndTime:   am.EndTime,
		})
	}

	var conv *models.Conversation
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		conv, err = s.convService.CreateConversation(txCtx, &wsSvc.CreateConversationRequest{
			Title:      archive.Conversation.Title,
			FolderID:   folderID,
			Icon:       archive.Conversation.Icon,
			Info:       archive.Conversation.Info,
			TemplateID: archive.Conversation.TemplateID,
		})
		if err != nil {
			return err
		}
		return s.msgService.InsertMany(txCtx, msgs, conv.Path, conv.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("conversation imported",
		"id", conv.ID,
		"path", conv.Path,
		"messages", len(msgs),
	)
	return conv, nil
}
