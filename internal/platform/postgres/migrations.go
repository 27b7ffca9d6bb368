package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	migrationsDir = "migrations"

	// MigrationTableName is the goose version table.
	MigrationTableName = "schema_migrations"
)

// Migration commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
	MigrateReset  = "reset"
)

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// slogGooseLogger forwards goose output to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level without exiting; goose also returns the error.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate runs the named goose command against db using the embedded
// migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "migrations"), slog.String("command", command))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, migrationsDir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, migrationsDir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, migrationsDir)
	case MigrateReset:
		err = goose.ResetContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected up, down, status or reset)", command)
	}
	if err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration completed")
	return nil
}

// MigrationFiles lists the embedded migration file names in order.
func MigrationFiles() ([]string, error) {
	entries, err := migrationsFS.ReadDir(migrationsDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
