// Package cache provides a Redis read-through cache for product lookups and
// a no-op stand-in used when no Redis address is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/phrazzld/bilemo-api/internal/config"
	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

// Generation identifies the state of a cached entry between invalidations.
type Generation int64

var errStaleGeneration = errors.New("cache generation changed")

// ProductCache caches products by ID. Implementations treat backend failures
// as misses; callers always fall back to the store.
//
// A miss returns the entry's current Generation. Set only stores the product
// if no Invalidate happened since that Generation was read, so a stale row
// fetched before a concurrent update is never written back.
type ProductCache interface {
	Get(ctx context.Context, id int64) (*domain.Product, Generation, bool)
	Set(ctx context.Context, product *domain.Product, gen Generation)
	Invalidate(ctx context.Context, id int64)
}

// Stats counts cache outcomes since startup.
type Stats struct {
	Hits   uint64
	Misses uint64
	Sets   uint64
	Stale  uint64
	Errors uint64
}

// RedisProductCache stores products as JSON under prefix+"product:"+id and
// their generation counter under the same key suffixed with ":gen".
type RedisProductCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger

	hits, misses, sets, stale, errs atomic.Uint64
}

var _ ProductCache = (*RedisProductCache)(nil)

// cachedProduct keeps the timestamps that Product hides from JSON.
type cachedProduct struct {
	domain.Product
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRedisProductCache wraps an existing client.
func NewRedisProductCache(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisProductCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisProductCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "product_cache")),
	}
}

// New builds the cache described by cfg. An empty Redis address yields a
// Noop cache; otherwise the server must answer a ping within five seconds.
func New(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (ProductCache, func() error, error) {
	if !cfg.Enabled() {
		return Noop{}, func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	return NewRedisProductCache(client, cfg.Prefix, ttl, logger), client.Close, nil
}

func (c *RedisProductCache) key(id int64) string {
	return c.prefix + "product:" + strconv.FormatInt(id, 10)
}

func (c *RedisProductCache) genKey(id int64) string {
	return c.key(id) + ":gen"
}

// stringGetter is satisfied by *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// generation reads the counter through cmd, which may be a watching
// transaction. A missing counter is generation zero.
func generation(ctx context.Context, cmd stringGetter, key string) (Generation, error) {
	n, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return Generation(n), err
}

// Get implements ProductCache.
func (c *RedisProductCache) Get(ctx context.Context, id int64) (*domain.Product, Generation, bool) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == nil {
		var cp cachedProduct
		if err := json.Unmarshal(data, &cp); err == nil {
			c.hits.Add(1)
			p := cp.Product
			p.CreatedAt, p.UpdatedAt = cp.CreatedAt, cp.UpdatedAt
			return &p, 0, true
		}
		c.errs.Add(1)
	} else if !errors.Is(err, redis.Nil) {
		c.errs.Add(1)
		log.Warn("cache get failed",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, -1, false
	}

	c.misses.Add(1)
	gen, err := generation(ctx, c.client, c.genKey(id))
	if err != nil {
		c.errs.Add(1)
		log.Warn("cache generation read failed",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, -1, false
	}
	return nil, gen, false
}

// Set implements ProductCache. The write runs under WATCH on the generation
// counter and is dropped when the counter no longer equals gen. A negative
// gen, returned when the miss itself failed, never stores anything.
func (c *RedisProductCache) Set(ctx context.Context, product *domain.Product, gen Generation) {
	if gen < 0 {
		return
	}
	data, err := json.Marshal(cachedProduct{
		Product:   *product,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	})
	if err != nil {
		c.errs.Add(1)
		return
	}

	genKey := c.genKey(product.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(product.ID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		c.sets.Add(1)
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		c.stale.Add(1)
		logger.FromContextOrDefault(ctx, c.logger).Debug("dropped stale cache fill",
			slog.Int64("product_id", product.ID))
	default:
		c.errs.Add(1)
		logger.FromContextOrDefault(ctx, c.logger).Warn("cache set failed",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
	}
}

// Invalidate implements ProductCache. It bumps the generation counter and
// deletes the entry in one transaction.
func (c *RedisProductCache) Invalidate(ctx context.Context, id int64) {
	genKey := c.genKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		if c.ttl > 0 {
			pipe.Expire(ctx, genKey, c.ttl)
		}
		pipe.Del(ctx, c.key(id))
		return nil
	})
	if err != nil {
		c.errs.Add(1)
		logger.FromContextOrDefault(ctx, c.logger).Warn("cache invalidate failed",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
	}
}

// Stats returns a snapshot of the counters.
func (c *RedisProductCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Sets:   c.sets.Load(),
		Stale:  c.stale.Load(),
		Errors: c.errs.Load(),
	}
}

// Noop never stores anything.
type Noop struct{}

var _ ProductCache = Noop{}

// Get always misses.
func (Noop) Get(context.Context, int64) (*domain.Product, Generation, bool) { return nil, 0, false }

// Set discards the product.
func (Noop) Set(context.Context, *domain.Product, Generation) {}

// Invalidate does nothing.
func (Noop) Invalidate(context.Context, int64) {}
