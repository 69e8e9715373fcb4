package workspace

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"threadline/internal/config"
	models "threadline/internal/domain/models/workspace"
	"threadline/internal/domain/repositories"
	wsRepo "threadline/internal/domain/repositories/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

type conversationService struct {
	convRepo   wsRepo.ConversationRepository
	folderRepo wsRepo.FolderRepository
	msgRepo    wsRepo.MessageRepository
	namespace  wsSvc.PathNamespace
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(
	convRepo wsRepo.ConversationRepository,
	folderRepo wsRepo.FolderRepository,
	msgRepo wsRepo.MessageRepository,
	namespace wsSvc.PathNamespace,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) wsSvc.ConversationService {
	return &conversationService{
		convRepo:   convRepo,
		folderRepo: folderRepo,
		msgRepo:    msgRepo,
		namespace:  namespace,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateConversation creates a conversation under an optional folder
func (s *conversationService) CreateConversation(ctx context.Context, req *wsSvc.CreateConversationRequest) (*models.Conversation, error) {
	req.FolderID = normalizeID(req.FolderID)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationError(err)
	}

	var conv *models.Conversation
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folderPath, err := s.folderPath(txCtx, req.FolderID)
		if err != nil {
			return err
		}

		path := s.namespace.ChildPath(folderPath, req.Title)
		if err := s.namespace.EnsureAvailable(txCtx, path); err != nil {
			return err
		}

		now := time.Now().UTC()
		conv = &models.Conversation{
			ID:         uuid.New().String(),
			Title:      req.Title,
			Path:       path,
			FolderID:   req.FolderID,
			Icon:       req.Icon,
			Info:       req.Info,
			TemplateID: req.TemplateID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return s.convRepo.Create(txCtx, conv)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("conversation created",
		"id", conv.ID,
		"title", conv.Title,
		"folder_id", conv.FolderID,
		"path", conv.Path,
	)

	return conv, nil
}

// GetConversation retrieves a conversation by ID
func (s *conversationService) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	return s.convRepo.GetByID(ctx, id)
}

// GetConversationByPath retrieves a conversation by its exact path
func (s *conversationService) GetConversationByPath(ctx context.Context, path string) (*models.Conversation, error) {
	return s.convRepo.GetByPath(ctx, path)
}

// UpdateConversation replaces the conversation's mutable fields. Messages
// are leaves directly under the conversation, so a path change is a plain
// equality update on them rather than a prefix rewrite.
func (s *conversationService) UpdateConversation(ctx context.Context, id string, req *wsSvc.UpdateConversationRequest) (*models.Conversation, error) {
	req.FolderID = normalizeID(req.FolderID)
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, validationError(err)
	}

	var (
		conv    *models.Conversation
		oldPath string
		moved   int64
	)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		conv, err = s.convRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		oldPath = conv.Path

		folderPath, err := s.folderPath(txCtx, req.FolderID)
		if err != nil {
			return err
		}

		candidate := s.namespace.ChildPath(folderPath, req.Title)
		conv.Title = req.Title
		conv.FolderID = req.FolderID
		conv.Icon = req.Icon
		conv.Info = req.Info
		conv.TemplateID = req.TemplateID
		conv.UpdatedAt = time.Now().UTC()

		if candidate == oldPath {
			return s.convRepo.Update(txCtx, conv)
		}

		if err := s.namespace.EnsureAvailable(txCtx, candidate); err != nil {
			return err
		}

		conv.Path = candidate
		if err := s.convRepo.Update(txCtx, conv); err != nil {
			return err
		}
		moved, err = s.msgRepo.SetConversationPath(txCtx, conv.ID, candidate)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("conversation updated",
		"id", conv.ID,
		"old_path", oldPath,
		"path", conv.Path,
		"messages_moved", moved,
	)

	return conv, nil
}

// PatchConversation merges inside the write transaction, so concurrent
// patches of different fields both survive
func (s *conversationService) PatchConversation(ctx context.Context, id string, patch *wsSvc.PatchConversationRequest) (*models.Conversation, error) {
	var conv *models.Conversation
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := s.convRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		conv, err = s.UpdateConversation(txCtx, id, patch.Merge(current))
		return err
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// DeleteConversation removes the conversation and all of its messages
func (s *conversationService) DeleteConversation(ctx context.Context, id string) error {
	var removed int64
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		if removed, err = s.msgRepo.DeleteByConversation(txCtx, id); err != nil {
			return err
		}
		return s.convRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("conversation deleted", "id", id, "messages", removed)
	return nil
}

// ClearConversation removes every message and keeps the conversation row
func (s *conversationService) ClearConversation(ctx context.Context, id string) error {
	var removed int64
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.convRepo.GetByID(txCtx, id); err != nil {
			return err
		}
		var err error
		removed, err = s.msgRepo.DeleteByConversation(txCtx, id)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("conversation cleared", "id", id, "messages", removed)
	return nil
}

// ListWithoutFolder lists root-level conversations
func (s *conversationService) ListWithoutFolder(ctx context.Context) ([]models.Conversation, error) {
	return s.convRepo.ListWithoutFolder(ctx)
}

// ListByFolder lists conversations directly inside a folder
func (s *conversationService) ListByFolder(ctx context.Context, folderID string) ([]models.Conversation, error) {
	if _, err := s.folderRepo.GetByID(ctx, folderID); err != nil {
		return nil, err
	}
	return s.convRepo.ListByFolder(ctx, folderID)
}

func (s *conversationService) folderPath(ctx context.Context, folderID *string) (*string, error) {
	if folderID == nil {
		return nil, nil
	}
	folder, err := s.folderRepo.GetByID(ctx, *folderID)
	if err != nil {
		return nil, err
	}
	return &folder.Path, nil
}

func (s *conversationService) validateCreateRequest(req *wsSvc.CreateConversationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, labelRules("conversation title", config.MaxConversationTitleLength)...),
		validation.Field(&req.Icon, validation.RuneLength(0, config.MaxIconLength)),
	)
}

func (s *conversationService) validateUpdateRequest(req *wsSvc.UpdateConversationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, labelRules("conversation title", config.MaxConversationTitleLength)...),
		validation.Field(&req.Icon, validation.RuneLength(0, config.MaxIconLength)),
	)
}
