package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bilemo-api/internal/domain"
)

// ProductStore defines the interface for product persistence.
type ProductStore interface {
	// Create inserts a new product and assigns its ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns a window of products ordered by ID ascending, together
	// with the total number of products.
	List(ctx context.Context, offset, limit int) ([]*domain.Product, int, error)

	// Update overwrites every mutable column of an existing product.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by its ID.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a ProductStore bound to the given transaction.
	WithTx(tx *sql.Tx) ProductStore
}
