package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
	models "threadline/internal/domain/models/workspace"
	wsRepo "threadline/internal/domain/repositories/workspace"
	"threadline/internal/repository/sqlstore"
)

const messageColumns = "id, conversation_id, conversation_path, role, content, status, created_at, updated_at, start_time, end_time"

// SQLMessageRepository implements the MessageRepository interface
type SQLMessageRepository struct {
	db     *sqlx.DB
	tables *sqlstore.TableNames
	logger *slog.Logger
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(config *sqlstore.RepositoryConfig) wsRepo.MessageRepository {
	return &SQLMessageRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *SQLMessageRepository) insertQuery(executor sqlx.ExtContext) string {
	return executor.Rebind(fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.tables.Messages, messageColumns))
}

// Create creates a new message
func (r *SQLMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	return r.insert(ctx, executor, r.insertQuery(executor), msg)
}

// CreateMany inserts messages as given. Timestamps are kept; path and
// conversation are stamped from the arguments.
func (r *SQLMessageRepository) CreateMany(ctx context.Context, msgs []models.Message, path, conversationID string) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := r.insertQuery(executor)

	for i := range msgs {
		msgs[i].ConversationID = conversationID
		msgs[i].ConversationPath = path
		if err := r.insert(ctx, executor, query, &msgs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLMessageRepository) insert(ctx context.Context, executor sqlx.ExecerContext, query string, msg *models.Message) error {
	_, err := executor.ExecContext(ctx, query,
		msg.ID,
		msg.ConversationID,
		msg.ConversationPath,
		msg.Role,
		msg.Content,
		msg.Status,
		msg.CreatedAt,
		msg.UpdatedAt,
		msg.StartTime,
		msg.EndTime,
	)
	if err != nil {
		if sqlstore.IsForeignKeyError(err) {
			return domain.NewNotFoundError(domain.KindConversation, msg.ConversationID)
		}
		return sqlstore.WrapError("create message", err)
	}
	return nil
}

// GetByID retrieves a message by ID
func (r *SQLMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = ?
	`, messageColumns, r.tables.Messages))

	var msg models.Message
	if err := executor.GetContext(ctx, &msg, query, id); err != nil {
		if sqlstore.IsNoRowsError(err) {
			return nil, domain.NewNotFoundError(domain.KindMessage, id)
		}
		var decodeErr *domain.PayloadDecodeError
		if errors.As(err, &decodeErr) {
			return nil, &domain.PayloadDecodeError{MessageID: id, Err: decodeErr.Err}
		}
		return nil, sqlstore.WrapError("get message", err)
	}

	return &msg, nil
}

// ListByConversation lists messages of a conversation in creation order
func (r *SQLMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
	`, messageColumns, r.tables.Messages))

	msgs := []models.Message{}
	if err := executor.SelectContext(ctx, &msgs, query, conversationID); err != nil {
		return nil, sqlstore.WrapError("list messages", err)
	}
	return msgs, nil
}

// CountByConversation counts messages of a conversation
func (r *SQLMessageRepository) CountByConversation(ctx context.Context, conversationID string) (int, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE conversation_id = ?`, r.tables.Messages))

	var count int
	if err := executor.GetContext(ctx, &count, query, conversationID); err != nil {
		return 0, sqlstore.WrapError("count messages", err)
	}
	return count, nil
}

// UpdateContent persists content, updated_at and end_time
func (r *SQLMessageRepository) UpdateContent(ctx context.Context, msg *models.Message) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		UPDATE %s SET content = ?, updated_at = ?, end_time = ?
		WHERE id = ?
	`, r.tables.Messages))

	result, err := executor.ExecContext(ctx, query, msg.Content, msg.UpdatedAt, msg.EndTime, msg.ID)
	if err != nil {
		return sqlstore.WrapError("update message content", err)
	}
	return requireRow(result, domain.KindMessage, msg.ID)
}

// ReplaceContent overwrites content and updated_at; start and end times are kept
func (r *SQLMessageRepository) ReplaceContent(ctx context.Context, id string, content models.Content, updatedAt time.Time) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		UPDATE %s SET content = ?, updated_at = ?
		WHERE id = ?
	`, r.tables.Messages))

	result, err := executor.ExecContext(ctx, query, content, updatedAt, id)
	if err != nil {
		return sqlstore.WrapError("replace message content", err)
	}
	return requireRow(result, domain.KindMessage, id)
}

// UpdateStatus persists status, updated_at and end_time
func (r *SQLMessageRepository) UpdateStatus(ctx context.Context, msg *models.Message) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		UPDATE %s SET status = ?, updated_at = ?, end_time = ?
		WHERE id = ?
	`, r.tables.Messages))

	result, err := executor.ExecContext(ctx, query, msg.Status, msg.UpdatedAt, msg.EndTime, msg.ID)
	if err != nil {
		return sqlstore.WrapError("update message status", err)
	}
	return requireRow(result, domain.KindMessage, msg.ID)
}

// SetConversationPath sets conversation_path on every message of a conversation
func (r *SQLMessageRepository) SetConversationPath(ctx context.Context, conversationID, path string) (int64, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`
		UPDATE %s SET conversation_path = ? WHERE conversation_id = ?
	`, r.tables.Messages))

	result, err := executor.ExecContext(ctx, query, path, conversationID)
	if err != nil {
		return 0, sqlstore.WrapError("set message paths", err)
	}
	return result.RowsAffected()
}

// RewritePathPrefix moves every message under oldPrefix to newPrefix
func (r *SQLMessageRepository) RewritePathPrefix(ctx context.Context, oldPrefix, newPrefix string) (int64, error) {
	rebase, rebaseArgs := sqlstore.RebaseExpr("conversation_path", oldPrefix, newPrefix)
	where, whereArgs := sqlstore.DescendantClause("conversation_path", oldPrefix)

	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`UPDATE %s SET conversation_path = %s WHERE %s`, r.tables.Messages, rebase, where))

	result, err := executor.ExecContext(ctx, query, append(rebaseArgs, whereArgs...)...)
	if err != nil {
		return 0, sqlstore.WrapError("rewrite message paths", err)
	}
	return result.RowsAffected()
}

// Delete deletes a message
func (r *SQLMessageRepository) Delete(ctx context.Context, id string) error {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Messages))

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return sqlstore.WrapError("delete message", err)
	}
	return requireRow(result, domain.KindMessage, id)
}

// DeleteByConversation deletes every message of a conversation
func (r *SQLMessageRepository) DeleteByConversation(ctx context.Context, conversationID string) (int64, error) {
	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE conversation_id = ?`, r.tables.Messages))

	result, err := executor.ExecContext(ctx, query, conversationID)
	if err != nil {
		return 0, sqlstore.WrapError("delete conversation messages", err)
	}
	return result.RowsAffected()
}

// DeleteByPath deletes every message whose conversation_path lies strictly under pathPrefix
func (r *SQLMessageRepository) DeleteByPath(ctx context.Context, pathPrefix string) (int64, error) {
	where, args := sqlstore.DescendantClause("conversation_path", pathPrefix)

	executor := sqlstore.GetExecutor(ctx, r.db)
	query := executor.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE %s`, r.tables.Messages, where))

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, sqlstore.WrapError("delete messages by path", err)
	}
	return result.RowsAffected()
}
