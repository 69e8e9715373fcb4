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

const conversationColumns = "id, title, path, folder_id, icon, info, template_id, created_at, updated_at"

// SQLConversationRepository implements the ConversationRepository interface
type SQLConversationRepository struct {
	db     *sqlx.DB
	tables *sqlstore.TableNames
	logger *slog.Logger
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(config *sqlstore.RepositoryConfig) wsRepo.ConversationRepository {
	return &SQLConversationRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new conversation
func (r *SQLConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.tables.Conversations, conversationColumns))

	_, err := executor.ExecContext(ctx, query,
		conv.ID,
		conv.Title,
		conv.Path,
		conv.FolderID,
		conv.Icon,
		conv.Info,
		conv.TemplateID,
		conv.CreatedAt,
		conv.UpdatedAt,
	)
	if err != nil {
		return r.classify("create conversation", conv, err)
	}

	return nil
}

// GetByID retrieves a conversation by ID
func (r *SQLConversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = ?
	`, conversationColumns, r.tables.Conversations))

	var conv models.Conversation
	if err := executor.GetContext(ctx, &conv, query, id); err != nil {
		if sqlstore.IsNoRowsError(err) {
			return nil, domain.NewNotFoundError(domain.KindConversation, id)
		}
		return nil, sqlstore.WrapError("get conversation", err)
	}

	return &conv, nil
}

// GetByPath retrieves a conversation by its exact path
func (r *SQLConversationRepository) GetByPath(ctx context.Context, path string) (*models.Conversation, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		SELECT %s FROM %s WHERE path = ?
	`, conversationColumns, r.tables.Conversations))

	var conv models.Conversation
	if err := executor.GetContext(ctx, &conv, query, path); err != nil {
		if sqlstore.IsNoRowsError(err) {
			return nil, domain.NewNotFoundError(domain.KindConversation, path)
		}
		return nil, sqlstore.WrapError("get conversation by path", err)
	}

	return &conv, nil
}

// Update updates every mutable field of a conversation
func (r *SQLConversationRepository) Update(ctx context.Context, conv *models.Conversation) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		UPDATE %s
		SET title = ?, path = ?, folder_id = ?, icon = ?, info = ?, template_id = ?, updated_at = ?
		WHERE id = ?
	`, r.tables.Conversations))

	result, err := executor.ExecContext(ctx, query,
		conv.Title,
		conv.Path,
		conv.FolderID,
		conv.Icon,
		conv.Info,
		conv.TemplateID,
		conv.UpdatedAt,
		conv.ID,
	)
	if err != nil {
		return r.classify("update conversation", conv, err)
	}

	return requireRow(result, domain.KindConversation, conv.ID)
}

// Delete deletes a conversation
func (r *SQLConversationRepository) Delete(ctx context.Context, id string) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Conversations))

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return sqlstore.WrapError("delete conversation", err)
	}

	return requireRow(result, domain.KindConversation, id)
}

// ListWithoutFolder lists root-level conversations, most recently updated first
func (r *SQLConversationRepository) ListWithoutFolder(ctx context.Context) ([]models.Conversation, error) {
	return r.list(ctx, "list root conversations", fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE folder_id IS NULL
		ORDER BY updated_at DESC
	`, conversationColumns, r.tables.Conversations))
}

// ListByFolder lists conversations directly inside a folder
func (r *SQLConversationRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Conversation, error) {
	return r.list(ctx, "list folder conversations", fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE folder_id = ?
		ORDER BY updated_at DESC
	`, conversationColumns, r.tables.Conversations), folderID)
}

// ListAll lists every conversation ordered by path
func (r *SQLConversationRepository) ListAll(ctx context.Context) ([]models.Conversation, error) {
	return r.list(ctx, "list conversations", fmt.Sprintf(`
		SELECT %s FROM %s ORDER BY path ASC
	`, conversationColumns, r.tables.Conversations))
}

// RewritePathPrefix moves every strict descendant of oldPath under newPath
func (r *SQLConversationRepository) RewritePathPrefix(ctx context.Context, oldPath, newPath string) (int64, error) {
	rebase, rebaseArgs := sqlstore.RebaseExpr("path", oldPath, newPath)
	where, whereArgs := sqlstore.DescendantClause("path", oldPath)

	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`UPDATE %s SET path = %s WHERE %s`, r.tables.Conversations, rebase, where))

	result, err := executor.ExecContext(ctx, query, append(rebaseArgs, whereArgs...)...)
	if err != nil {
		if sqlstore.IsDuplicateError(err) {
			return 0, domain.NewPathExistsError(domain.KindConversation, newPath, "")
		}
		return 0, sqlstore.WrapError("rewrite conversation paths", err)
	}
	return result.RowsAffected()
}

// DeleteSubtree deletes every conversation at or under path
func (r *SQLConversationRepository) DeleteSubtree(ctx context.Context, path string) (int64, error) {
	where, args := sqlstore.SubtreeClause("path", path)

	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE %s`, r.tables.Conversations, where))

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, sqlstore.WrapError("delete conversation subtree", err)
	}
	return result.RowsAffected()
}

func (r *SQLConversationRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]models.Conversation, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)

	convs := []models.Conversation{}
	if err := executor.SelectContext(ctx, &convs, executor.Rebind(query), args...); err != nil {
		return nil, sqlstore.WrapError(op, err)
	}
	return convs, nil
}

// classify maps constraint violations on insert/update to domain errors
func (r *SQLConversationRepository) classify(op string, conv *models.Conversation, err error) error {
	if sqlstore.IsDuplicateError(err) {
		return domain.NewPathExistsError(domain.KindConversation, conv.Path, "")
	}
	if sqlstore.IsForeignKeyError(err) && conv.FolderID != nil {
		return domain.NewNotFoundError(domain.KindFolder, *conv.FolderID)
	}
	return sqlstore.WrapError(op, err)
}
