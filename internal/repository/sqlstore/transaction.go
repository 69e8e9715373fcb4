package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
	"threadline/internal/domain/repositories"
)

// namespaceLockKey is the Postgres advisory lock guarding the shared
// folder/conversation path namespace
const namespaceLockKey int64 = 0x7468726561646c6e

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	db      *sqlx.DB
	dialect Dialect
	logger  *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(config *RepositoryConfig) repositories.TransactionManager {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionManager{db: config.DB, dialect: config.Dialect, logger: logger}
}

// ExecTx executes a function within an exclusive write transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	// Nested calls join the outer transaction
	if repositories.GetTx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return &domain.TransactionError{Op: "begin transaction", Err: err}
	}

	// Defer rollback - safe even if commit succeeds
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			tm.logger.Warn("rollback failed", "error", err)
		}
	}()

	if tm.dialect == DialectPostgres {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", namespaceLockKey); err != nil {
			return &domain.TransactionError{Op: "acquire namespace lock", Err: err}
		}
	}

	// Store transaction in context so repositories can access it
	if err := fn(repositories.SetTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &domain.TransactionError{Op: "commit transaction", Err: err}
	}

	return nil
}
