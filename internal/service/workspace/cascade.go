package workspace

import (
	"context"
	"log/slog"

	wsRepo "threadline/internal/domain/repositories/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

type cascadeRewriter struct {
	folderRepo wsRepo.FolderRepository
	convRepo   wsRepo.ConversationRepository
	msgRepo    wsRepo.MessageRepository
	logger     *slog.Logger
}

// NewCascadeRewriter creates the descendant path rewriter used by folder moves
func NewCascadeRewriter(
	folderRepo wsRepo.FolderRepository,
	convRepo wsRepo.ConversationRepository,
	msgRepo wsRepo.MessageRepository,
	logger *slog.Logger,
) wsSvc.CascadeRewriter {
	return &cascadeRewriter{
		folderRepo: folderRepo,
		convRepo:   convRepo,
		msgRepo:    msgRepo,
		logger:     logger,
	}
}

// Rewrite rebases folders, then conversations, then messages strictly under
// oldPath. ctx must carry the caller's transaction; any error aborts it.
func (c *cascadeRewriter) Rewrite(ctx context.Context, oldPath, newPath string) error {
	folders, err := c.folderRepo.RewritePathPrefix(ctx, oldPath, newPath)
	if err != nil {
		return err
	}

	conversations, err := c.convRepo.RewritePathPrefix(ctx, oldPath, newPath)
	if err != nil {
		return err
	}

	messages, err := c.msgRepo.RewritePathPrefix(ctx, oldPath, newPath)
	if err != nil {
		return err
	}

	c.logger.Debug("cascade rewrite",
		"old_path", oldPath,
		"new_path", newPath,
		"folders", folders,
		"conversations", conversations,
		"messages", messages,
	)
	return nil
}
