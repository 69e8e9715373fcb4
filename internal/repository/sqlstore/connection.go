package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"threadline/internal/domain/repositories"
)

// Dialect selects the SQL backend
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a configured driver name onto a Dialect
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// driverName returns the database/sql driver registered for the dialect
func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB      *sqlx.DB
	Dialect Dialect
	Tables  *TableNames
	Logger  *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Prefix        string
	Folders       string
	Conversations string
	Messages      string
	Migrations    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:        prefix,
		Folders:       fmt.Sprintf("%sfolders", prefix),
		Conversations: fmt.Sprintf("%sconversations", prefix),
		Messages:      fmt.Sprintf("%smessages", prefix),
		Migrations:    fmt.Sprintf("%sschema_migrations", prefix),
	}
}

// PoolConfig configures CreateConnectionPool
type PoolConfig struct {
	Dialect     Dialect
	DatabaseURL string
	MaxConns    int
}

// CreateConnectionPool opens a pooled handle for the configured backend.
//
// Every pooled connection is used exclusively by one operation at a time;
// database/sql blocks callers when all MaxConns connections are checked out.
//
// SQLite: the DSN is a file path. Each connection gets foreign keys,
// a busy timeout and WAL journaling, and every transaction starts with
// BEGIN IMMEDIATE so the write lock is taken before the first statement.
// ":memory:" is refused because each pooled connection would see its own
// empty database.
//
// Postgres: the DSN is a connection URL handled by pgx. The write lock is
// an advisory transaction lock taken by the TransactionManager.
func CreateConnectionPool(ctx context.Context, cfg PoolConfig) (*sqlx.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	if cfg.Dialect == DialectSQLite {
		if dsn == ":memory:" {
			return nil, fmt.Errorf(":memory: database not supported (requires multiple connections); use a temp file")
		}
		if dir := filepath.Dir(sqlitePath(dsn)); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(cfg.Dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Debug("database pool ready", "dialect", cfg.Dialect, "max_conns", maxConns)
	return db, nil
}

// sqlitePath strips DSN parameters and the file: scheme
func sqlitePath(dsn string) string {
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn = dsn[:i]
	}
	return strings.TrimPrefix(dsn, "file:")
}

// sqliteDSN appends the connection parameters unless the caller set them
func sqliteDSN(dsn string) string {
	params := url.Values{}
	if !strings.Contains(dsn, "foreign_keys") {
		params.Add("_pragma", "foreign_keys(1)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		params.Add("_pragma", "busy_timeout(10000)")
	}
	if !strings.Contains(dsn, "journal_mode") {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	if !strings.Contains(dsn, "_txlock") {
		params.Set("_txlock", "immediate")
	}
	if !strings.Contains(dsn, "_time_format") {
		params.Set("_time_format", "sqlite")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + params.Encode()
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
func GetExecutor(ctx context.Context, db *sqlx.DB) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return db
}
