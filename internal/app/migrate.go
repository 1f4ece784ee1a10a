package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/calegria/bookstore-backend/internal/config"
)

// migrationsDir is resolvable relative to the working directory in
// containers; MIGRATIONS_DIR overrides it.
const migrationsDir = "migrations"

// Migrate applies pending goose migrations. goose drives database/sql,
// so a short-lived stdlib connection is opened alongside the pgx pool.
func Migrate(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) error {
	dir := migrationsDir
	if env := os.Getenv("MIGRATIONS_DIR"); env != "" {
		dir = env
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(dir))
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, r := range results {
		logger.Info("migration applied",
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}
