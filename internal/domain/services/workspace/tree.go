package workspace

import (
	"context"

	models "threadline/internal/domain/models/workspace"
)

// TreeService defines operations for building the workspace tree
type TreeService interface {
	// GetTree builds the nested folder/conversation tree
	GetTree(ctx context.Context) (*models.TreeNode, error)
}
