package workspace

import (
	"context"
	"log/slog"

	models "threadline/internal/domain/models/workspace"
	wsRepo "threadline/internal/domain/repositories/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

type searchService struct {
	convRepo   wsRepo.ConversationRepository
	folderRepo wsRepo.FolderRepository
	logger     *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	convRepo wsRepo.ConversationRepository,
	folderRepo wsRepo.FolderRepository,
	logger *slog.Logger,
) wsSvc.SearchService {
	return &searchService{
		convRepo:   convRepo,
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// SearchConversations returns conversations whose title or info contains
// query, directly or through transliteration
func (s *searchService) SearchConversations(ctx context.Context, query string) ([]models.Conversation, error) {
	all, err := s.convRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]models.Conversation, 0)
	for _, conv := range all {
		fields := []string{conv.Title}
		if conv.Info != nil {
			fields = append(fields, *conv.Info)
		}
		if matchesQuery(query, fields...) {
			results = append(results, conv)
		}
	}

	s.logger.Debug("conversation search",
		"query", query,
		"scanned", len(all),
		"matched", len(results),
	)
	return results, nil
}

// SearchFolders returns folders whose name contains query, directly or
// through transliteration
func (s *searchService) SearchFolders(ctx context.Context, query string) ([]models.Folder, error) {
	all, err := s.folderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]models.Folder, 0)
	for _, folder := range all {
		if matchesQuery(query, folder.Name) {
			results = append(results, folder)
		}
	}

	s.logger.Debug("folder search",
		"query", query,
		"scanned", len(all),
		"matched", len(results),
	)
	return results, nil
}
