package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/store"
)

const userColumns = `id, username, email, password_hash, client_id, created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction managed by the caller.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create.
// Returns store.ErrEmailExists when users_email_key rejects the row and
// store.ErrInvalidEntity when the owning client does not exist.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO users (username, email, password_hash, client_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.ClientID,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("user email already exists", slog.Int64("client_id", user.ClientID))
			return MapError(err)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("user references unknown client", slog.Int64("client_id", user.ClientID))
			return fmt.Errorf("%w: client with ID %d not found", store.ErrInvalidEntity, user.ClientID)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.Int64("client_id", user.ClientID))
		return MapError(err)
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.Int64("client_id", user.ClientID))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by ID", slog.Int64("user_id", id))

	user, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}
	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail. Emails are stored
// lowercased, so the lookup is an exact match.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return user, nil
}

// List implements store.UserStore.List.
func (s *PostgresUserStore) List(ctx context.Context, offset, limit int) ([]*domain.User, int, error) {
	return s.list(ctx,
		`SELECT COUNT(*) FROM users`,
		`SELECT `+userColumns+` FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`,
		nil, offset, limit)
}

// ListByClient implements store.UserStore.ListByClient.
func (s *PostgresUserStore) ListByClient(
	ctx context.Context,
	clientID int64,
	offset, limit int,
) ([]*domain.User, int, error) {
	return s.list(ctx,
		`SELECT COUNT(*) FROM users WHERE client_id = $1`,
		`SELECT `+userColumns+` FROM users WHERE client_id = $1 ORDER BY id ASC LIMIT $2 OFFSET $3`,
		[]any{clientID}, offset, limit)
}

func (s *PostgresUserStore) list(
	ctx context.Context,
	countQuery, pageQuery string,
	filter []any,
	offset, limit int,
) ([]*domain.User, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, filter...).Scan(&total); err != nil {
		log.Error("failed to count users", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	args := append(append([]any{}, filter...), limit, offset)
	rows, err := s.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close user rows", slog.String("error", cerr.Error()))
		}
	}()

	users := make([]*domain.User, 0, windowCap(total, offset, limit))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, total, nil
}

// Delete implements store.UserStore.Delete.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.ClientID,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
