package workspace

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	models "threadline/internal/domain/models/workspace"
	"threadline/internal/domain/repositories"
	wsRepo "threadline/internal/domain/repositories/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

type messageService struct {
	msgRepo   wsRepo.MessageRepository
	convRepo  wsRepo.ConversationRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewMessageService creates a new message service
func NewMessageService(
	msgRepo wsRepo.MessageRepository,
	convRepo wsRepo.ConversationRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) wsSvc.MessageService {
	return &messageService{
		msgRepo:   msgRepo,
		convRepo:  convRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// InsertMessage stores a message under its conversation's current path.
// created, updated, start and end times are all set to now.
func (s *messageService) InsertMessage(ctx context.Context, req *wsSvc.InsertMessageRequest) (*models.Message, error) {
	if req.Status == "" {
		req.Status = models.StatusComplete
	}
	if req.Content.Kind == "" {
		req.Content.Kind = models.ContentKindText
	}
	if err := s.validateInsertRequest(req); err != nil {
		return nil, validationError(err)
	}

	var msg *models.Message
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		conv, err := s.convRepo.GetByID(txCtx, req.ConversationID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		msg = &models.Message{
			ID:               uuid.New().String(),
			ConversationID:   conv.ID,
			ConversationPath: conv.Path,
			Role:             req.Role,
			Content:          req.Content,
			Status:           req.Status,
			CreatedAt:        now,
			UpdatedAt:        now,
			StartTime:        now,
			EndTime:          now,
		}
		return s.msgRepo.Create(txCtx, msg)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("message inserted",
		"id", msg.ID,
		"conversation_id", msg.ConversationID,
		"role", msg.Role,
	)

	return msg, nil
}

// InsertMany stores msgs as one batch. Caller-supplied timestamps are kept;
// conversation ID and path are stamped from the arguments. Messages without
// an ID get a fresh one.
func (s *messageService) InsertMany(ctx context.Context, msgs []models.Message, conversationPath, conversationID string) error {
	for i := range msgs {
		if msgs[i].ID == "" {
			msgs[i].ID = uuid.New().String()
		}
		if err := validateRole(msgs[i].Role); err != nil {
			return validationError(err)
		}
		if err := validateStatus(msgs[i].Status); err != nil {
			return validationError(err)
		}
		if err := msgs[i].Content.Validate(); err != nil {
			return validationError(err)
		}
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.msgRepo.CreateMany(txCtx, msgs, conversationPath, conversationID)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("messages inserted",
		"conversation_id", conversationID,
		"count", len(msgs),
	)
	return nil
}

// AddContent appends a streamed delta to the message content
func (s *messageService) AddContent(ctx context.Context, id, delta string) (*models.Message, error) {
	var msg *models.Message
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		msg, err = s.msgRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		msg.Content.Append(delta)
		msg.UpdatedAt = now
		msg.EndTime = now
		return s.msgRepo.UpdateContent(txCtx, msg)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// UpdateStatus sets the status and refreshes updated and end times
func (s *messageService) UpdateStatus(ctx context.Context, id string, status string) error {
	if err := validateStatus(status); err != nil {
		return validationError(err)
	}

	now := time.Now().UTC()
	return s.msgRepo.UpdateStatus(ctx, &models.Message{
		ID:        id,
		Status:    status,
		UpdatedAt: now,
		EndTime:   now,
	})
}

// UpdateContent overwrites content after a manual edit. Unlike AddContent
// it leaves the end time alone and does not read the row first.
func (s *messageService) UpdateContent(ctx context.Context, id string, content models.Content) error {
	if content.Kind == "" {
		content.Kind = models.ContentKindText
	}
	if err := content.Validate(); err != nil {
		return validationError(err)
	}
	return s.msgRepo.ReplaceContent(ctx, id, content, time.Now().UTC())
}

// GetMessage retrieves a message by ID
func (s *messageService) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	return s.msgRepo.GetByID(ctx, id)
}

// ListByConversation lists a conversation's messages in creation order
func (s *messageService) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	if _, err := s.convRepo.GetByID(ctx, conversationID); err != nil {
		return nil, err
	}
	return s.msgRepo.ListByConversation(ctx, conversationID)
}

// CountByConversation counts a conversation's messages
func (s *messageService) CountByConversation(ctx context.Context, conversationID string) (int, error) {
	return s.msgRepo.CountByConversation(ctx, conversationID)
}

// DeleteMessage removes one message
func (s *messageService) DeleteMessage(ctx context.Context, id string) error {
	return s.msgRepo.Delete(ctx, id)
}

// DeleteByConversation removes every message of a conversation
func (s *messageService) DeleteByConversation(ctx context.Context, conversationID string) (int64, error) {
	return s.msgRepo.DeleteByConversation(ctx, conversationID)
}

// DeleteByPath removes messages whose conversation path lies strictly under path
func (s *messageService) DeleteByPath(ctx context.Context, path string) (int64, error) {
	return s.msgRepo.DeleteByPath(ctx, path)
}

// UpdatePath rebases conversation_path for messages strictly under oldPrefix
func (s *messageService) UpdatePath(ctx context.Context, oldPrefix, newPrefix string) (int64, error) {
	var n int64
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		n, err = s.msgRepo.RewritePathPrefix(txCtx, oldPrefix, newPrefix)
		return err
	})
	return n, err
}

func (s *messageService) validateInsertRequest(req *wsSvc.InsertMessageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ConversationID, validation.Required),
		validation.Field(&req.Role, validation.Required, validation.In(models.Roles...)),
		validation.Field(&req.Status, validation.Required, validation.In(models.Statuses...)),
		validation.Field(&req.Content),
	)
}
