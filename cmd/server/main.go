// Package main implements the entry point for the BileMo API server, which
// serves the product catalogue and lets reseller clients manage their users.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/bilemo-api/internal/config"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/platform/postgres"
)

func main() {
	migrate := flag.String("migrate", "",
		"run a migration command (up, down, status, reset) and exit")
	flag.Parse()

	if err := run(*migrate); err != nil {
		log.Fatalf("bilemo-api: %v", err)
	}
}

func run(migrateCommand string) error {
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
		slog.Bool("cache_enabled", cfg.Cache.Enabled()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	if migrateCommand != "" {
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, migrateCommand, appLogger)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, appLogger); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
