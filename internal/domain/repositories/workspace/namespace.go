package workspace

import (
	"context"
)

// PathOwner identifies the entity currently holding a path
type PathOwner struct {
	Kind string // domain.KindFolder or domain.KindConversation
	ID   string
}

// NamespaceRepository answers uniqueness questions across the folder and
// conversation tables, which share one path namespace
type NamespaceRepository interface {
	// PathOwner returns the entity holding path, or nil when the path is free.
	// Folders are checked first; the lookup stops at the first hit.
	PathOwner(ctx context.Context, path string) (*PathOwner, error)

	// LongestDescendantPath returns the character length of the longest
	// folder or conversation path strictly under path, or 0 when none exists
	LongestDescendantPath(ctx context.Context, path string) (int, error)
}
