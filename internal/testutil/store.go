// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"threadline/internal/domain/repositories"
	wsRepo "threadline/internal/domain/repositories/workspace"
	"threadline/internal/repository/sqlstore"
	sqlWorkspace "threadline/internal/repository/sqlstore/workspace"
)

// PostgresURLEnv names the variable that switches tests to Postgres
const PostgresURLEnv = "TEST_DATABASE_URL"

// Store is a migrated database with its repositories wired
type Store struct {
	DB            *sqlx.DB
	Config        *sqlstore.RepositoryConfig
	Folders       wsRepo.FolderRepository
	Conversations wsRepo.ConversationRepository
	Messages      wsRepo.MessageRepository
	Namespace     wsRepo.NamespaceRepository
	TxManager     repositories.TransactionManager
	Logger        *slog.Logger
}

// Logger returns a logger that discards everything
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewStore opens a migrated store. It uses a temp-file SQLite database
// unless TEST_DATABASE_URL points at Postgres, in which case tables get a
// unique prefix and are dropped on cleanup.
func NewStore(t testing.TB) *Store {
	t.Helper()
	ctx := context.Background()

	pool := sqlstore.PoolConfig{
		Dialect:     sqlstore.DialectSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
		MaxConns:    4,
	}
	prefix := "test_"
	if url := os.Getenv(PostgresURLEnv); url != "" {
		pool.Dialect = sqlstore.DialectPostgres
		pool.DatabaseURL = url
		prefix = "t" + uuid.New().String()[:8] + "_"
	}

	db, err := sqlstore.CreateConnectionPool(ctx, pool)
	require.NoError(t, err)

	logger := Logger()
	cfg := &sqlstore.RepositoryConfig{
		DB:      db,
		Dialect: pool.Dialect,
		Tables:  sqlstore.NewTableNames(prefix),
		Logger:  logger,
	}
	require.NoError(t, sqlstore.Migrate(ctx, cfg))

	t.Cleanup(func() {
		if cfg.Dialect == sqlstore.DialectPostgres {
			for _, table := range []string{cfg.Tables.Messages, cfg.Tables.Conversations, cfg.Tables.Folders, cfg.Tables.Migrations} {
				_, _ = db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table))
			}
		}
		db.Close()
	})

	return &Store{
		DB:            db,
		Config:        cfg,
		Folders:       sqlWorkspace.NewFolderRepository(cfg),
		Conversations: sqlWorkspace.NewConversationRepository(cfg),
		Messages:      sqlWorkspace.NewMessageRepository(cfg),
		Namespace:     sqlWorkspace.NewNamespaceRepository(cfg),
		TxManager:     sqlstore.NewTransactionManager(cfg),
		Logger:        logger,
	}
}

// SQLiteOnly skips tests that rely on SQLite-specific SQL
func (s *Store) SQLiteOnly(t testing.TB) {
	t.Helper()
	if s.Config.Dialect != sqlstore.DialectSQLite {
		t.Skip("requires sqlite")
	}
}
