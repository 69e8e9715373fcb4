package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"threadline/internal/app"
	"threadline/internal/config"
	"threadline/internal/handler"
	"threadline/internal/middleware"
	"threadline/internal/repository/sqlstore"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging, optionally teeing into a rotated log file
	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		out, closeLog, err := config.OpenLogOutput(os.Stdout, cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer closeLog()
		logOutput = out
	}
	logger := config.NewLogger(logOutput, cfg.Debug)
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"driver", cfg.DatabaseDriver,
		"table_prefix", cfg.TablePrefix,
	)

	dialect, err := sqlstore.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		log.Fatalf("Invalid database driver: %v", err)
	}

	// Create connection pool
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.CreateConnectionPool(ctx, sqlstore.PoolConfig{
		Dialect:     dialect,
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DBMaxConns,
	})
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer db.Close()

	logger.Info("database connected",
		"dialect", dialect,
		"max_conns", cfg.DBMaxConns,
	)

	repoConfig := &sqlstore.RepositoryConfig{
		DB:      db,
		Dialect: dialect,
		Tables:  sqlstore.NewTableNames(cfg.TablePrefix),
		Logger:  logger,
	}
	if err := sqlstore.Migrate(ctx, repoConfig); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories, services and handlers
	repos := app.NewRepositories(repoConfig)
	services := app.NewServices(repos, logger)
	handlers := app.NewHandlers(repoConfig, services, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handlers)

	// Build middleware chain
	// Order: CORS → RequestLogger → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
