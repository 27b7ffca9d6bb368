package postgres_test

import (
	"context"
	"database/sql"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/platform/postgres"
	"github.com/phrazzld/bilemo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "modele", "marque", "prix", "description", "stock", "ram",
	"capacite_stockage", "created_at", "updated_at",
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newProductStore(t *testing.T) (*postgres.PostgresProductStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewPostgresProductStore(db, nil), mock
}

func TestNewPostgresProductStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { postgres.NewPostgresProductStore(nil, nil) })
}

func TestProductStoreCreate(t *testing.T) {
	s, mock := newProductStore(t)

	p, err := domain.NewProduct(domain.ProductAttributes{
		Modele: strPtr("iPhone 15"),
		Marque: strPtr("Apple"),
		Prix:   intPtr(999),
	})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("iPhone 15", "Apple", 999, nil, nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	require.NoError(t, s.Create(context.Background(), p))
	assert.Equal(t, int64(7), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductStoreCreateRejectsInvalid(t *testing.T) {
	s, mock := newProductStore(t)

	err := s.Create(context.Background(), &domain.Product{Stock: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrNegativeValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductStoreGetByID(t *testing.T) {
	s, mock := newProductStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(3, "Galaxy", "Samsung", 800, nil, 12, 8, "256GB", now, now))

	p, err := s.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	require.NotNil(t, p.Modele)
	assert.Equal(t, "Galaxy", *p.Modele)
	assert.Nil(t, p.Description)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 12, *p.Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductStoreGetByIDNotFound(t *testing.T) {
	s, mock := newProductStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := s.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProductStoreList(t *testing.T) {
	s, mock := newProductStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY id ASC LIMIT $1 OFFSET $2")).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(11, "A", nil, nil, nil, nil, nil, nil, now, now).
			AddRow(12, "B", nil, nil, nil, nil, nil, nil, now, now))

	products, total, err := s.List(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, products, 2)
	assert.Equal(t, int64(11), products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductStoreListUnboundedWindow(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		limit  int
	}{
		{"huge limit", 0, math.MaxInt},
		{"huge offset", math.MaxInt, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newProductStore(t)
			now := time.Now().UTC()

			mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products")).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			rows := sqlmock.NewRows(productCols)
			if tt.offset == 0 {
				rows.AddRow(1, "A", nil, nil, nil, nil, nil, nil, now, now)
			}
			mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
				WithArgs(tt.limit, tt.offset).
				WillReturnRows(rows)

			var products []*domain.Product
			var total int
			var err error
			require.NotPanics(t, func() {
				products, total, err = s.List(context.Background(), tt.offset, tt.limit)
			})
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			assert.LessOrEqual(t, cap(products), 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductStoreUpdateWritesNulls(t *testing.T) {
	s, mock := newProductStore(t)

	p := &domain.Product{ID: 4, Modele: strPtr("Pixel"), UpdatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).
		WithArgs("Pixel", nil, nil, nil, nil, nil, nil, sqlmock.AnyArg(), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Update(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductStoreUpdateNotFound(t *testing.T) {
	s, mock := newProductStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), &domain.Product{ID: 99})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestProductStoreDelete(t *testing.T) {
	s, mock := newProductStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), 1))
	assert.ErrorIs(t, s.Delete(context.Background(), 1), store.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductStoreWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := postgres.NewPostgresProductStore(db, nil)
	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Delete(ctx, 2)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
