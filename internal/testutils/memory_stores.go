package testutils

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/store"
)

// MemoryProductStore is an in-memory store.ProductStore.
type MemoryProductStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Product
}

var _ store.ProductStore = (*MemoryProductStore)(nil)

// NewMemoryProductStore creates an empty MemoryProductStore.
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{rows: make(map[int64]domain.Product)}
}

func (s *MemoryProductStore) Create(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.rows[p.ID] = *p
	return nil
}

func (s *MemoryProductStore) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return &p, nil
}

func (s *MemoryProductStore) List(_ context.Context, offset, limit int) ([]*domain.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*domain.Product, 0, len(s.rows))
	for _, p := range s.rows {
		p := p
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, offset, limit), len(all), nil
}

func (s *MemoryProductStore) Update(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[p.ID]; !ok {
		return store.ErrProductNotFound
	}
	s.rows[p.ID] = *p
	return nil
}

func (s *MemoryProductStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(s.rows, id)
	return nil
}

// WithTx returns the store itself; writes are not rolled back.
func (s *MemoryProductStore) WithTx(*sql.Tx) store.ProductStore {
	return s
}

// MemoryUserStore is an in-memory store.UserStore. Emails are unique
// case-insensitively.
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.User
}

var _ store.UserStore = (*MemoryUserStore)(nil)

// NewMemoryUserStore creates an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{rows: make(map[int64]domain.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrEmailExists
		}
	}
	s.nextID++
	u.ID = s.nextID
	s.rows[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.rows[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.rows {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *MemoryUserStore) List(_ context.Context, offset, limit int) ([]*domain.User, int, error) {
	all := s.filter(func(domain.User) bool { return true })
	return window(all, offset, limit), len(all), nil
}

func (s *MemoryUserStore) ListByClient(
	_ context.Context,
	clientID int64,
	offset, limit int,
) ([]*domain.User, int, error) {
	all := s.filter(func(u domain.User) bool { return u.ClientID == clientID })
	return window(all, offset, limit), len(all), nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.rows, id)
	return nil
}

// WithTx returns the store itself; writes are not rolled back.
func (s *MemoryUserStore) WithTx(*sql.Tx) store.UserStore {
	return s
}

// Count returns the number of stored users.
func (s *MemoryUserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *MemoryUserStore) filter(keep func(domain.User) bool) []*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.User, 0, len(s.rows))
	for _, u := range s.rows {
		if keep(u) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MemoryClientStore is an in-memory store.ClientStore.
type MemoryClientStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Client
}

var _ store.ClientStore = (*MemoryClientStore)(nil)

// NewMemoryClientStore creates an empty MemoryClientStore.
func NewMemoryClientStore() *MemoryClientStore {
	return &MemoryClientStore{rows: make(map[int64]domain.Client)}
}

func (s *MemoryClientStore) Create(_ context.Context, c *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rows {
		switch {
		case strings.EqualFold(existing.Email, c.Email):
			return store.ErrEmailExists
		case existing.Username == c.Username, existing.APIKey == c.APIKey:
			return store.ErrDuplicate
		}
	}
	s.nextID++
	c.ID = s.nextID
	s.rows[c.ID] = *c
	return nil
}

func (s *MemoryClientStore) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	return s.find(func(c domain.Client) bool { return c.ID == id })
}

func (s *MemoryClientStore) GetByEmail(_ context.Context, email string) (*domain.Client, error) {
	return s.find(func(c domain.Client) bool { return strings.EqualFold(c.Email, email) })
}

func (s *MemoryClientStore) GetByAPIKey(_ context.Context, apiKey string) (*domain.Client, error) {
	return s.find(func(c domain.Client) bool { return c.APIKey == apiKey })
}

// WithTx returns the store itself.
func (s *MemoryClientStore) WithTx(*sql.Tx) store.ClientStore {
	return s
}

func (s *MemoryClientStore) find(match func(domain.Client) bool) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.rows {
		if match(c) {
			c := c
			return &c, nil
		}
	}
	return nil, store.ErrClientNotFound
}

func window[T any](all []T, offset, limit int) []T {
	start := min(max(offset, 0), len(all))
	end := start + min(max(limit, 0), len(all)-start)
	return all[start:end]
}
