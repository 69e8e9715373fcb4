package workspace

import (
	"context"

	models "threadline/internal/domain/models/workspace"
)

// SearchService finds conversations and folders by substring, also matching
// against a Latin transliteration of the searched field.
type SearchService interface {
	SearchConversations(ctx context.Context, query string) ([]models.Conversation, error)
	SearchFolders(ctx context.Context, query string) ([]models.Folder, error)
}
