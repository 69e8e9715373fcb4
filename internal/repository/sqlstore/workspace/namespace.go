package workspace

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
	wsRepo "threadline/internal/domain/repositories/workspace"
	"threadline/internal/repository/sqlstore"
)

// SQLNamespaceRepository checks path ownership across folders and conversations
type SQLNamespaceRepository struct {
	db     *sqlx.DB
	tables *sqlstore.TableNames
}

// NewNamespaceRepository creates a new namespace repository
func NewNamespaceRepository(config *sqlstore.RepositoryConfig) wsRepo.NamespaceRepository {
	return &SQLNamespaceRepository{db: config.DB, tables: config.Tables}
}

// PathOwner returns the folder or conversation holding path, or nil
func (r *SQLNamespaceRepository) PathOwner(ctx context.Context, path string) (*wsRepo.PathOwner, error) {
	lookups := []struct {
		kind  string
		table string
	}{
		{domain.KindFolder, r.tables.Folders},
		{domain.KindConversation, r.tables.Conversations},
	}

	executor := sqlstore.GetExecutor(ctx, r.db)
	for _, l := range lookups {
		query := executor.Rebind(fmt.Sprintf(`SELECT id FROM %s WHERE path = ? LIMIT 1`, l.table))

		var id string
		err := executor.QueryRowxContext(ctx, query, path).Scan(&id)
		if err == nil {
			return &wsRepo.PathOwner{Kind: l.kind, ID: id}, nil
		}
		if !sqlstore.IsNoRowsError(err) {
			return nil, sqlstore.WrapError("check path", err)
		}
	}

	return nil, nil
}

// LongestDescendantPath returns the longest path length strictly under path
func (r *SQLNamespaceRepository) LongestDescendantPath(ctx context.Context, path string) (int, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)

	longest := 0
	for _, table := range []string{r.tables.Folders, r.tables.Conversations} {
		where, args := sqlstore.DescendantClause("path", path)
		// length() counts characters in both dialects
		query := executor.Rebind(fmt.Sprintf(`SELECT COALESCE(MAX(length(path)), 0) FROM %s WHERE %s`, table, where))

		var n int
		if err := executor.GetContext(ctx, &n, query, args...); err != nil {
			return 0, sqlstore.WrapError("measure descendant paths", err)
		}
		if n > longest {
			longest = n
		}
	}
	return longest, nil
}
