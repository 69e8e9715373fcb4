package workspace

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"threadline/internal/config"
	"threadline/internal/domain"
	models "threadline/internal/domain/models/workspace"
	"threadline/internal/domain/repositories"
	wsRepo "threadline/internal/domain/repositories/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

type folderService struct {
	folderRepo wsRepo.FolderRepository
	convRepo   wsRepo.ConversationRepository
	msgRepo    wsRepo.MessageRepository
	namespace  wsSvc.PathNamespace
	cascade    wsSvc.CascadeRewriter
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo wsRepo.FolderRepository,
	convRepo wsRepo.ConversationRepository,
	msgRepo wsRepo.MessageRepository,
	namespace wsSvc.PathNamespace,
	cascade wsSvc.CascadeRewriter,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) wsSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		convRepo:   convRepo,
		msgRepo:    msgRepo,
		namespace:  namespace,
		cascade:    cascade,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a folder. The parent lookup, the namespace check and
// the insert share one transaction so the check holds at write time.
func (s *folderService) CreateFolder(ctx context.Context, req *wsSvc.CreateFolderRequest) (*models.Folder, error) {
	req.ParentID = normalizeID(req.ParentID)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationError(err)
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		parentPath, err := s.parentPath(txCtx, req.ParentID)
		if err != nil {
			return err
		}

		path := s.namespace.ChildPath(parentPath, req.Name)
		if err := s.namespace.EnsureAvailable(txCtx, path); err != nil {
			return err
		}

		now := time.Now().UTC()
		folder = &models.Folder{
			ID:        uuid.New().String(),
			Name:      req.Name,
			Path:      path,
			ParentID:  req.ParentID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// RenameOrMoveFolder applies a new name and parent. An unchanged path only
// touches the folder row; a changed path rewrites the whole subtree in the
// same transaction, so a failure anywhere leaves every path as it was.
func (s *folderService) RenameOrMoveFolder(ctx context.Context, id string, req *wsSvc.RenameOrMoveFolderRequest) (*models.Folder, error) {
	req.ParentID = normalizeID(req.ParentID)
	if err := s.validateRenameOrMoveRequest(req); err != nil {
		return nil, validationError(err)
	}

	var (
		folder  *models.Folder
		oldPath string
	)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		oldPath = folder.Path

		parentPath, err := s.parentPath(txCtx, req.ParentID)
		if err != nil {
			return err
		}
		// Prevent circular references (can't move a folder under itself or its descendants)
		if parentPath != nil && models.IsAtOrUnder(*parentPath, folder.Path) {
			return &domain.CycleError{FolderID: id, TargetID: *req.ParentID}
		}

		candidate := s.namespace.ChildPath(parentPath, req.Name)
		folder.Name = req.Name
		folder.ParentID = req.ParentID
		folder.UpdatedAt = time.Now().UTC()

		if candidate == oldPath {
			return s.folderRepo.Update(txCtx, folder)
		}

		if err := s.namespace.EnsureAvailable(txCtx, candidate); err != nil {
			return err
		}
		if err := s.namespace.EnsureSubtreeFits(txCtx, oldPath, candidate); err != nil {
			return err
		}

		folder.Path = candidate
		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}
		return s.cascade.Rewrite(txCtx, oldPath, candidate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"old_path", oldPath,
		"path", folder.Path,
	)

	return folder, nil
}

// PatchFolder reads the current row inside the write transaction so a
// concurrent patch of the other field is never reverted
func (s *folderService) PatchFolder(ctx context.Context, id string, patch *wsSvc.PatchFolderRequest) (*models.Folder, error) {
	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := s.folderRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		folder, err = s.RenameOrMoveFolder(txCtx, id, patch.Merge(current))
		return err
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFolder deletes a folder and everything beneath it: messages first,
// then conversations, then descendant folders, then the folder itself.
func (s *folderService) DeleteFolder(ctx context.Context, id string) error {
	var (
		folder                           *models.Folder
		messages, conversations, folders int64
	)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if messages, err = s.msgRepo.DeleteByPath(txCtx, folder.Path); err != nil {
			return err
		}
		if conversations, err = s.convRepo.DeleteSubtree(txCtx, folder.Path); err != nil {
			return err
		}
		if folders, err = s.folderRepo.DeleteDescendants(txCtx, folder.Path); err != nil {
			return err
		}
		return s.folderRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", id,
		"path", folder.Path,
		"subfolders", folders,
		"conversations", conversations,
		"messages", messages,
	)

	return nil
}

// ListRootFolders lists folders with no parent
func (s *folderService) ListRootFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folderRepo.ListRoot(ctx)
}

// ListChildren lists the direct subfolders of a folder
func (s *folderService) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	if _, err := s.folderRepo.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	return s.folderRepo.ListChildren(ctx, parentID)
}

// parentPath resolves an optional parent folder to its path
func (s *folderService) parentPath(ctx context.Context, parentID *string) (*string, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, err := s.folderRepo.GetByID(ctx, *parentID)
	if err != nil {
		return nil, err
	}
	return &parent.Path, nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *wsSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, labelRules("folder name", config.MaxFolderNameLength)...),
	)
}

// validateRenameOrMoveRequest validates a folder rename/move request
func (s *folderService) validateRenameOrMoveRequest(req *wsSvc.RenameOrMoveFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, labelRules("folder name", config.MaxFolderNameLength)...),
	)
}
