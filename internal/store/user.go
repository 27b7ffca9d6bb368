package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bilemo-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and assigns its ID.
	// Returns ErrEmailExists if the email is already taken; the unique
	// constraint is authoritative even when callers pre-check.
	// Returns ErrInvalidEntity if the owning client does not exist.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns a window of all users ordered by ID, with the total count.
	List(ctx context.Context, offset, limit int) ([]*domain.User, int, error)

	// ListByClient returns a window of the users owned by clientID ordered by
	// ID, with the total count for that client.
	ListByClient(ctx context.Context, clientID int64, offset, limit int) ([]*domain.User, int, error)

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
