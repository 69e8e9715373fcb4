package workspace

import (
	"strings"
)

// PathSeparator separates labels in a materialized path
const PathSeparator = "/"

// ChildPath builds the path of an entity labelled name under parentPath.
// A nil parent yields a root-level path. The label is used as given.
func ChildPath(parentPath *string, name string) string {
	if parentPath == nil {
		return PathSeparator + name
	}
	return *parentPath + PathSeparator + name
}

// DescendantPrefix returns the prefix every strict descendant of path starts with
func DescendantPrefix(path string) string {
	return path + PathSeparator
}

// IsStrictDescendant reports whether candidate lies under ancestor on a
// separator boundary. "/A/B" is under "/A"; "/AB" is not.
func IsStrictDescendant(candidate, ancestor string) bool {
	prefix := DescendantPrefix(ancestor)
	return len(candidate) > len(prefix) && strings.HasPrefix(candidate, prefix)
}

// IsAtOrUnder reports whether candidate equals ancestor or is a strict descendant
func IsAtOrUnder(candidate, ancestor string) bool {
	return candidate == ancestor || IsStrictDescendant(candidate, ancestor)
}

// RebasePath replaces the oldRoot prefix of path with newRoot.
// path must be oldRoot itself or a strict descendant of it.
func RebasePath(path, oldRoot, newRoot string) string {
	return newRoot + strings.TrimPrefix(path, oldRoot)
}
