//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/bilemo-api/internal/platform/postgres"
	"github.com/phrazzld/bilemo-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection checks and migrations.
const TestTimeout = 30 * time.Second

// Environment variables consulted for the test database URL, in order.
const (
	EnvTestDatabaseURL = "BILEMO_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// DatabaseURL returns the first configured test database URL, or "".
func DatabaseURL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Open connects to the test database and migrates it to the latest schema.
// The test is skipped when no database URL is configured. The connection
// is closed on test cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set, skipping database test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("test database unreachable at %s: %s", redact.String(dbURL), redact.Error(err))
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, logger), "failed to migrate test database")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// can write freely without affecting each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
