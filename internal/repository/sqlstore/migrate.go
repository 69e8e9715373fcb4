package sqlstore

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
	"text/template"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

var migrationPattern = regexp.MustCompile(`^(\d{3})_.*\.sql$`)

type migration struct {
	version int
	name    string
	sql     string
}

// Migrate applies every embedded migration for the dialect that has not
// been recorded yet. Each migration runs in its own transaction.
func Migrate(ctx context.Context, config *RepositoryConfig) error {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	migrations, err := loadMigrations(config.Dialect, config.Tables)
	if err != nil {
		return err
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL
		)
	`, config.Tables.Migrations)
	if _, err := config.DB.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var applied []int
	if err := config.DB.SelectContext(ctx, &applied,
		fmt.Sprintf("SELECT version FROM %s", config.Tables.Migrations)); err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}
		if err := applyMigration(ctx, config.DB, config.Tables, m); err != nil {
			return err
		}
		logger.Info("migration applied", "version", m.version, "name", m.name, "dialect", config.Dialect)
	}

	return nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, tables *TableNames, m migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return fmt.Errorf("apply migration %s: %w", m.name, err)
	}

	record := tx.Rebind(fmt.Sprintf(
		"INSERT INTO %s (version, name, applied_at) VALUES (?, ?, ?)", tables.Migrations))
	if _, err := tx.ExecContext(ctx, record, m.version, m.name, time.Now().UTC()); err != nil {
		return fmt.Errorf("record migration %s: %w", m.name, err)
	}

	return tx.Commit()
}

// loadMigrations reads, orders and renders the dialect's migration files
func loadMigrations(dialect Dialect, tables *TableNames) ([]migration, error) {
	dir := path.Join("migrations", string(dialect))
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", dialect, err)
	}

	seen := make(map[int]string)
	var migrations []migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matches := migrationPattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}
		version, _ := strconv.Atoi(matches[1])
		if existing, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration number %d: %s and %s", version, existing, entry.Name())
		}
		seen[version] = entry.Name()

		raw, err := migrationsFS.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		tmpl, err := template.New(entry.Name()).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse migration %s: %w", entry.Name(), err)
		}
		var rendered bytes.Buffer
		if err := tmpl.Execute(&rendered, tables); err != nil {
			return nil, fmt.Errorf("render migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, migration{version: version, name: entry.Name(), sql: rendered.String()})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })
	return migrations, nil
}
