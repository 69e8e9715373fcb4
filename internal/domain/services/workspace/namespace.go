package workspace

import "context"

// PathNamespace is the shared path space of folders and conversations
type PathNamespace interface {
	// ChildPath builds the path of a child labelled name under parentPath
	ChildPath(parentPath *string, name string) string

	// PathTaken reports whether any folder or conversation holds path
	PathTaken(ctx context.Context, path string) (bool, error)

	// EnsureAvailable returns a PathExistsError naming the holder of path
	EnsureAvailable(ctx context.Context, path string) error

	// EnsureSubtreeFits rejects rebasing oldPath onto newPath when a
	// descendant's rebased path would exceed the maximum path length
	EnsureSubtreeFits(ctx context.Context, oldPath, newPath string) error
}

// CascadeRewriter rebases every descendant path when a folder path changes.
// It must run inside the caller's write transaction.
type CascadeRewriter interface {
	Rewrite(ctx context.Context, oldPath, newPath string) error
}
