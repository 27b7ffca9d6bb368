package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/platform/cache"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
	"github.com/phrazzld/bilemo-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockProductStore mocks store.ProductStore
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStore) List(ctx context.Context, offset, limit int) ([]*domain.Product, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Product), args.Int(1), args.Error(2)
}

func (m *MockProductStore) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return m
}

// MockUserStore mocks store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context, offset, limit int) ([]*domain.User, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserStore) ListByClient(
	ctx context.Context,
	clientID int64,
	offset, limit int,
) ([]*domain.User, int, error) {
	args := m.Called(ctx, clientID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	m.Called(tx)
	return m
}

// MockClientStore mocks store.ClientStore
type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) Create(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientStore) get(args mock.Arguments) (*domain.Client, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientStore) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return m.get(m.Called(ctx, id))
}

func (m *MockClientStore) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return m.get(m.Called(ctx, email))
}

func (m *MockClientStore) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Client, error) {
	return m.get(m.Called(ctx, apiKey))
}

func (m *MockClientStore) WithTx(tx *sql.Tx) store.ClientStore {
	return m
}

// MockJWTService mocks auth.JWTService with function fields.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, clientID int64, admin bool) (string, time.Time, error)
}

func (m *MockJWTService) GenerateToken(ctx context.Context, clientID int64, admin bool) (string, time.Time, error) {
	return m.GenerateTokenFn(ctx, clientID, admin)
}

func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}

// plainHasher "hashes" by prefixing, so tests avoid bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }

func (plainHasher) Compare(hashed, pw string) error {
	if hashed != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

// memoryCache is a map-backed cache.ProductCache with per-id generations.
type memoryCache struct {
	items       map[int64]*domain.Product
	gens        map[int64]cache.Generation
	invalidated []int64

	// onMiss runs after a miss has read the generation.
	onMiss func(id int64)
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		items: make(map[int64]*domain.Product),
		gens:  make(map[int64]cache.Generation),
	}
}

func (c *memoryCache) Get(_ context.Context, id int64) (*domain.Product, cache.Generation, bool) {
	if p, ok := c.items[id]; ok {
		return p, 0, true
	}
	gen := c.gens[id]
	if c.onMiss != nil {
		c.onMiss(id)
	}
	return nil, gen, false
}

func (c *memoryCache) Set(_ context.Context, p *domain.Product, gen cache.Generation) {
	if c.gens[p.ID] != gen {
		return
	}
	c.items[p.ID] = p
}

func (c *memoryCache) Invalidate(_ context.Context, id int64) {
	c.gens[id]++
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
}
