package sqlstore

import (
	"fmt"
	"unicode/utf8"

	models "threadline/internal/domain/models/workspace"
)

// Path predicates compare character-counted prefixes with substr rather
// than LIKE, so '%' and '_' inside labels match literally. substr counts
// characters in both SQLite and Postgres.

// DescendantClause matches rows whose column is a strict descendant of path
func DescendantClause(column, path string) (string, []interface{}) {
	prefix := models.DescendantPrefix(path)
	return fmt.Sprintf("substr(%s, 1, ?) = ?", column),
		[]interface{}{utf8.RuneCountInString(prefix), prefix}
}

// SubtreeClause matches rows whose column equals path or is a strict descendant of it
func SubtreeClause(column, path string) (string, []interface{}) {
	desc, args := DescendantClause(column, path)
	return fmt.Sprintf("(%s = ? OR %s)", column, desc), append([]interface{}{path}, args...)
}

// RebaseExpr rewrites the oldPath prefix of column to newPath, keeping the suffix
func RebaseExpr(column, oldPath, newPath string) (string, []interface{}) {
	return fmt.Sprintf("CAST(? AS TEXT) || substr(%s, ?)", column),
		[]interface{}{newPath, utf8.RuneCountInString(oldPath) + 1}
}
