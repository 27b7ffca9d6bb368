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

const productColumns = `id, modele, marque, prix, description, stock, ram, capacite_stockage, created_at, updated_at`

// PostgresProductStore implements store.ProductStore on PostgreSQL.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a product store over db, which may be a
// pool or a transaction. A nil logger falls back to slog.Default().
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

var _ store.ProductStore = (*PostgresProductStore)(nil)

// Create implements store.ProductStore.Create.
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO products (modele, marque, prix, description, stock, ram, capacite_stockage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		product.Modele,
		product.Marque,
		product.Prix,
		product.Description,
		product.Stock,
		product.RAM,
		product.CapaciteStockage,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		log.Error("failed to create product", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("product created", slog.Int64("product_id", product.ID))
	return nil
}

// GetByID implements store.ProductStore.GetByID.
func (s *PostgresProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving product by ID", slog.Int64("product_id", id))

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.Int64("product_id", id))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, MapError(err)
	}
	return product, nil
}

// List implements store.ProductStore.List.
func (s *PostgresProductStore) List(ctx context.Context, offset, limit int) ([]*domain.Product, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		log.Error("failed to count products", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	query := `SELECT ` + productColumns + ` FROM products ORDER BY id ASC LIMIT $1 OFFSET $2`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list products",
			slog.String("error", err.Error()),
			slog.Int("offset", offset),
			slog.Int("limit", limit))
		return nil, 0, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close product rows", slog.String("error", cerr.Error()))
		}
	}()

	products := make([]*domain.Product, 0, windowCap(total, offset, limit))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Debug("listed products",
		slog.Int("count", len(products)),
		slog.Int("total", total))
	return products, total, nil
}

// windowCap bounds a list preallocation by the rows a LIMIT/OFFSET query
// over total rows can return.
func windowCap(total, offset, limit int) int {
	total = max(total, 0)
	remaining := total - min(max(offset, 0), total)
	return min(max(limit, 0), remaining)
}

// Update implements store.ProductStore.Update. Every attribute is written,
// so nil fields clear the stored value.
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return err
	}

	query := `
		UPDATE products
		SET modele = $1, marque = $2, prix = $3, description = $4, stock = $5,
		    ram = $6, capacite_stockage = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := s.db.ExecContext(ctx, query,
		product.Modele,
		product.Marque,
		product.Prix,
		product.Description,
		product.Stock,
		product.RAM,
		product.CapaciteStockage,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		return err
	}

	log.Info("product updated", slog.Int64("product_id", product.ID))
	return nil
}

// Delete implements store.ProductStore.Delete.
func (s *PostgresProductStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		return err
	}

	log.Info("product deleted", slog.Int64("product_id", id))
	return nil
}

// WithTx implements store.ProductStore.WithTx.
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{db: tx, logger: s.logger}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Modele,
		&p.Marque,
		&p.Prix,
		&p.Description,
		&p.Stock,
		&p.RAM,
		&p.CapaciteStockage,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
