package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
	models "threadline/internal/domain/models/workspace"
	wsRepo "threadline/internal/domain/repositories/workspace"
	"threadline/internal/repository/sqlstore"
)

const folderColumns = "id, name, path, parent_id, created_at, updated_at"

// SQLFolderRepository implements the FolderRepository interface
type SQLFolderRepository struct {
	db     *sqlx.DB
	tables *sqlstore.TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *sqlstore.RepositoryConfig) wsRepo.FolderRepository {
	return &SQLFolderRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *SQLFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.tables.Folders, folderColumns))

	_, err := executor.ExecContext(ctx, query,
		folder.ID,
		folder.Name,
		folder.Path,
		folder.ParentID,
		folder.CreatedAt,
		folder.UpdatedAt,
	)
	if err != nil {
		if sqlstore.IsDuplicateError(err) {
			return domain.NewPathExistsError(domain.KindFolder, folder.Path, "")
		}
		if sqlstore.IsForeignKeyError(err) && folder.ParentID != nil {
			return domain.NewNotFoundError(domain.KindFolder, *folder.ParentID)
		}
		return sqlstore.WrapError("create folder", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *SQLFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = ?
	`, folderColumns, r.tables.Folders))

	var folder models.Folder
	if err := executor.GetContext(ctx, &folder, query, id); err != nil {
		if sqlstore.IsNoRowsError(err) {
			return nil, domain.NewNotFoundError(domain.KindFolder, id)
		}
		return nil, sqlstore.WrapError("get folder", err)
	}

	return &folder, nil
}

// Update updates a folder
func (r *SQLFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		UPDATE %s
		SET name = ?, path = ?, parent_id = ?, updated_at = ?
		WHERE id = ?
	`, r.tables.Folders))

	result, err := executor.ExecContext(ctx, query,
		folder.Name,
		folder.Path,
		folder.ParentID,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		if sqlstore.IsDuplicateError(err) {
			return domain.NewPathExistsError(domain.KindFolder, folder.Path, "")
		}
		if sqlstore.IsForeignKeyError(err) && folder.ParentID != nil {
			return domain.NewNotFoundError(domain.KindFolder, *folder.ParentID)
		}
		return sqlstore.WrapError("update folder", err)
	}

	return requireRow(result, domain.KindFolder, folder.ID)
}

// Delete deletes a folder
func (r *SQLFolderRepository) Delete(ctx context.Context, id string) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Folders))

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return sqlstore.WrapError("delete folder", err)
	}

	return requireRow(result, domain.KindFolder, id)
}

// ListRoot lists folders without a parent
func (r *SQLFolderRepository) ListRoot(ctx context.Context) ([]models.Folder, error) {
	return r.list(ctx, "list root folders", fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE parent_id IS NULL
		ORDER BY name ASC
	`, folderColumns, r.tables.Folders))
}

// ListChildren lists immediate child folders
func (r *SQLFolderRepository) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	return r.list(ctx, "list folder children", fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE parent_id = ?
		ORDER BY name ASC
	`, folderColumns, r.tables.Folders), parentID)
}

// ListAll lists every folder ordered by path
func (r *SQLFolderRepository) ListAll(ctx context.Context) ([]models.Folder, error) {
	return r.list(ctx, "list folders", fmt.Sprintf(`
		SELECT %s FROM %s ORDER BY path ASC
	`, folderColumns, r.tables.Folders))
}

// RewritePathPrefix moves every strict descendant of oldPath under newPath
func (r *SQLFolderRepository) RewritePathPrefix(ctx context.Context, oldPath, newPath string) (int64, error) {
	rebase, rebaseArgs := sqlstore.RebaseExpr("path", oldPath, newPath)
	where, whereArgs := sqlstore.DescendantClause("path", oldPath)

	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`UPDATE %s SET path = %s WHERE %s`, r.tables.Folders, rebase, where))

	result, err := executor.ExecContext(ctx, query, append(rebaseArgs, whereArgs...)...)
	if err != nil {
		if sqlstore.IsDuplicateError(err) {
			return 0, domain.NewPathExistsError(domain.KindFolder, newPath, "")
		}
		return 0, sqlstore.WrapError("rewrite folder paths", err)
	}
	return result.RowsAffected()
}

// DeleteDescendants deletes every strict descendant of path
func (r *SQLFolderRepository) DeleteDescendants(ctx context.Context, path string) (int64, error) {
	where, args := sqlstore.DescendantClause("path", path)

	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE %s`, r.tables.Folders, where))

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, sqlstore.WrapError("delete descendant folders", err)
	}
	return result.RowsAffected()
}

func (r *SQLFolderRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]models.Folder, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)

	folders := []models.Folder{}
	if err := executor.SelectContext(ctx, &folders, executor.Rebind(query), args...); err != nil {
		return nil, sqlstore.WrapError(op, err)
	}
	return folders, nil
}
