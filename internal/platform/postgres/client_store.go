package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/store"
)

const clientColumns = `id, username, email, address, api_key, password_hash, is_admin, created_at, updated_at`

// PostgresClientStore implements store.ClientStore on PostgreSQL.
type PostgresClientStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresClientStore creates a client store over db.
func NewPostgresClientStore(db store.DBTX, logger *slog.Logger) *PostgresClientStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresClientStore{
		db:     db,
		logger: logger.With(slog.String("component", "client_store")),
	}
}

var _ store.ClientStore = (*PostgresClientStore)(nil)

// Create implements store.ClientStore.Create.
func (s *PostgresClientStore) Create(ctx context.Context, client *domain.Client) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := client.Validate(); err != nil {
		log.Warn("client validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO clients (username, email, address, api_key, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		client.Username,
		client.Email,
		client.Address,
		client.APIKey,
		client.HashedPassword,
		client.Admin,
		client.CreatedAt,
		client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		log.Error("failed to create client", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("client created",
		slog.Int64("client_id", client.ID),
		slog.Bool("admin", client.Admin))
	return nil
}

// GetByID implements store.ClientStore.GetByID.
func (s *PostgresClientStore) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return s.getOne(ctx, "id", id)
}

// GetByEmail implements store.ClientStore.GetByEmail.
func (s *PostgresClientStore) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return s.getOne(ctx, "email", email)
}

// GetByAPIKey implements store.ClientStore.GetByAPIKey.
func (s *PostgresClientStore) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Client, error) {
	return s.getOne(ctx, "api_key", apiKey)
}

// getOne looks a client up by a unique column. column is never user input.
func (s *PostgresClientStore) getOne(ctx context.Context, column string, value any) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Client
	err := s.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE `+column+` = $1`, value,
	).Scan(
		&c.ID,
		&c.Username,
		&c.Email,
		&c.Address,
		&c.APIKey,
		&c.HashedPassword,
		&c.Admin,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("client not found", slog.String("lookup", column))
			return nil, store.ErrClientNotFound
		}
		log.Error("failed to get client",
			slog.String("error", err.Error()),
			slog.String("lookup", column))
		return nil, MapError(err)
	}
	return &c, nil
}

// WithTx implements store.ClientStore.WithTx.
func (s *PostgresClientStore) WithTx(tx *sql.Tx) store.ClientStore {
	return &PostgresClientStore{db: tx, logger: s.logger}
}
