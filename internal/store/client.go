package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bilemo-api/internal/domain"
)

// ClientStore defines the interface for client persistence.
type ClientStore interface {
	// Create saves a new client and assigns its ID.
	// Returns ErrDuplicate if the username, email or API key is taken.
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by ID.
	// Returns ErrClientNotFound if the client does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Client, error)

	// GetByEmail retrieves a client by email.
	// Returns ErrClientNotFound if the client does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)

	// GetByAPIKey retrieves the client owning the given API key.
	// Returns ErrClientNotFound if no client has that key.
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Client, error)

	// WithTx returns a ClientStore bound to the given transaction.
	WithTx(tx *sql.Tx) ClientStore
}
