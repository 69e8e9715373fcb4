package workspace

import (
	"context"
	"log/slog"

	models "threadline/internal/domain/models/workspace"
	wsRepo "threadline/internal/domain/repositories/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo wsRepo.FolderRepository
	convRepo   wsRepo.ConversationRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo wsRepo.FolderRepository,
	convRepo wsRepo.ConversationRepository,
	logger *slog.Logger,
) wsSvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		convRepo:   convRepo,
		logger:     logger,
	}
}

// GetTree builds the nested folder/conversation tree
func (s *treeService) GetTree(ctx context.Context) (*models.TreeNode, error) {
	allFolders, err := s.folderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	allConversations, err := s.convRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// First pass: create all folder nodes
	folderMap := make(map[string]*models.FolderTreeNode, len(allFolders))
	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:            folder.ID,
			Name:          folder.Name,
			Path:          folder.Path,
			ParentID:      folder.ParentID,
			CreatedAt:     folder.CreatedAt,
			Folders:       []*models.FolderTreeNode{},
			Conversations: []models.ConversationTreeNode{},
		}
	}

	// Second pass: nest folders under their parents
	rootFolders := make([]*models.FolderTreeNode, 0)
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolders = append(rootFolders, node)
			continue
		}
		if parent, exists := folderMap[*folder.ParentID]; exists {
			parent.Folders = append(parent.Folders, node)
		}
	}

	// Third pass: attach conversations
	rootConversations := make([]models.ConversationTreeNode, 0)
	for _, conv := range allConversations {
		convNode := models.ConversationTreeNode{
			ID:        conv.ID,
			Title:     conv.Title,
			Path:      conv.Path,
			Icon:      conv.Icon,
			FolderID:  conv.FolderID,
			UpdatedAt: conv.UpdatedAt,
		}

		if conv.FolderID == nil {
			rootConversations = append(rootConversations, convNode)
			continue
		}
		if parent, exists := folderMap[*conv.FolderID]; exists {
			parent.Conversations = append(parent.Conversations, convNode)
		}
	}

	s.logger.Info("workspace tree built",
		"folder_count", len(allFolders),
		"conversation_count", len(allConversations),
	)

	return &models.TreeNode{
		Folders:       rootFolders,
		Conversations: rootConversations,
	}, nil
}
