package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/corepay/gateway/migrations"
)

// prepareGoose points goose at the embedded migration files. Goose keeps
// package-level state, so this runs before every migration entry point.
func prepareGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return nil
}

// migrateUp applies all pending migrations. It runs at every server start;
// an already-current schema is a no-op.
func migrateUp(db *sql.DB, logger *slog.Logger) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database schema is up to date")
	return nil
}

// runMigrationCommand executes an operator-requested migration command
// instead of starting the server.
func runMigrationCommand(db *sql.DB, command string, logger *slog.Logger) error {
	if err := prepareGoose(); err != nil {
		return err
	}

	logger.Info("Executing migration command", slog.String("command", command))

	switch command {
	case "up":
		return goose.Up(db, ".")
	case "down":
		return goose.Down(db, ".")
	case "status":
		return goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migration command: %q (expected up, down or status)", command)
	}
}
