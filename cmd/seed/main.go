package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"threadline/internal/app"
	"threadline/internal/config"
	models "threadline/internal/domain/models/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
	"threadline/internal/repository/sqlstore"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only apply migrations, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all folders, conversations and messages (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := config.NewLogger(os.Stdout, cfg.Debug)

	dialect, err := sqlstore.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		log.Fatalf("Invalid database driver: %v", err)
	}

	ctx := context.Background()
	db, err := sqlstore.CreateConnectionPool(ctx, sqlstore.PoolConfig{
		Dialect:     dialect,
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DBMaxConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repoConfig := &sqlstore.RepositoryConfig{
		DB:      db,
		Dialect: dialect,
		Tables:  sqlstore.NewTableNames(cfg.TablePrefix),
		Logger:  logger,
	}

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, db, repoConfig.Tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("Applying migrations...")
	if err := sqlstore.Migrate(ctx, repoConfig); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if err := clearAllData(ctx, db, repoConfig.Tables); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	if *clearData {
		log.Println("Data cleared")
		return
	}

	services := app.NewServices(app.NewRepositories(repoConfig), logger)
	if err := seed(ctx, services); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}

// seed builds a small demo workspace through the service layer
func seed(ctx context.Context, svcs *app.Services) error {
	work, err := svcs.Folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{Name: "Work"})
	if err != nil {
		return err
	}
	planning, err := svcs.Folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{Name: "Planning", ParentID: &work.ID})
	if err != nil {
		return err
	}
	personal, err := svcs.Folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{Name: "个人"})
	if err != nil {
		return err
	}

	conversations := []struct {
		title    string
		folderID *string
		turns    []string
	}{
		{"Q3 roadmap", &planning.ID, []string{"Draft the Q3 roadmap.", "Here is a first outline."}},
		{"Standup notes", &work.ID, []string{"Summarize yesterday's standup."}},
		{"我爱你", &personal.ID, []string{"How do you say this in English?", "I love you."}},
		{"Scratchpad", nil, nil},
	}

	for _, c := range conversations {
		conv, err := svcs.Conversations.CreateConversation(ctx, &wsSvc.CreateConversationRequest{
			Title:    c.title,
			FolderID: c.folderID,
		})
		if err != nil {
			return fmt.Errorf("create %q: %w", c.title, err)
		}

		for i, text := range c.turns {
			role := models.RoleUser
			if i%2 == 1 {
				role = models.RoleAssistant
			}
			if _, err := svcs.Messages.InsertMessage(ctx, &wsSvc.InsertMessageRequest{
				ConversationID: conv.ID,
				Role:           role,
				Content:        models.TextContent(text),
			}); err != nil {
				return fmt.Errorf("insert message into %q: %w", c.title, err)
			}
		}

		log.Printf("Created conversation %s (%d messages)", conv.Path, len(c.turns))
	}

	return nil
}

// dropAllTables drops every table, children first
func dropAllTables(ctx context.Context, db *sqlx.DB, tables *sqlstore.TableNames) error {
	for _, table := range []string{tables.Messages, tables.Conversations, tables.Folders, tables.Migrations} {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// clearAllData removes all rows, children first
func clearAllData(ctx context.Context, db *sqlx.DB, tables *sqlstore.TableNames) error {
	for _, table := range []string{tables.Messages, tables.Conversations, tables.Folders} {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
