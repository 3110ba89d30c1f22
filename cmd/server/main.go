// Package main implements the entry point for the payment gateway server,
// which routes loan and option payments, payouts and card lifecycle
// operations to the configured payment providers.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/corepay/gateway/internal/config"
	"github.com/corepay/gateway/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires the application together and either
// executes a migration command or serves HTTP until shutdown.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("payout_company", cfg.Gateway.PayoutCompany),
		slog.Bool("method_cache_enabled", cfg.Redis.Addr != ""))

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				appLogger.Error("Failed to close database", slog.String("error", err.Error()))
			}
		}()
		return runMigrationCommand(db, migrateCmd, appLogger)
	}

	if err := migrateUp(db, appLogger); err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		// The application owns the database handle once constructed; on a
		// wiring failure nothing else will close it.
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Failed to close database", slog.String("error", closeErr.Error()))
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(app.setupRouter())
}
