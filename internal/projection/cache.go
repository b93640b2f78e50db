package projection

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/iwvelando/wishlist-scheduler/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// unavailableMarker is cached for pairs without a projection.
const unavailableMarker = "none"

// CacheStore is a string key/value store with expiry.
type CacheStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisStore is a CacheStore backed by Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the configured Redis instance.
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

// Ping checks that Redis is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get implements CacheStore.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set implements CacheStore.
func (r *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// memorySweepInterval is the minimum time between expiry sweeps.
const memorySweepInterval = time.Minute

// MemoryStore is an in-process CacheStore. Expired entries are dropped when
// read and swept from the whole map at most once per memorySweepInterval.
type MemoryStore struct {
	mu        sync.Mutex
	data      map[string]memoryEntry
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]memoryEntry), now: time.Now}
}

// Get implements CacheStore.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.data, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set implements CacheStore. A non-positive ttl never expires.
func (m *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !now.Before(m.nextSweep) {
		m.sweep(now)
		m.nextSweep = now.Add(memorySweepInterval)
	}

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	m.data[key] = e
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryStore) sweep(now time.Time) {
	for key, e := range m.data {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.data, key)
		}
	}
}

// CachedSource memoizes a Source. Keys are scoped by the round the schedule
// is built in, so projections refresh when the round changes.
type CachedSource struct {
	source    Source
	store     CacheStore
	asOfRound int
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCachedSource wraps source with store for schedules built in asOfRound.
func NewCachedSource(logger *zap.Logger, source Source, store CacheStore, asOfRound int, ttl time.Duration) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{source: source, store: store, asOfRound: asOfRound, ttl: ttl, logger: logger}
}

// CacheKey returns the cache key for a projection looked up in asOfRound.
func CacheKey(asOfRound, playerID, round int) string {
	return fmt.Sprintf("projection:%d:%d:%d", asOfRound, playerID, round)
}

// Projection implements Source. Cache failures are logged and bypassed.
func (c *CachedSource) Projection(ctx context.Context, playerID, round int) (int64, bool, error) {
	key := CacheKey(c.asOfRound, playerID, round)

	val, hit, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("projection cache read failed",
			zap.String("op", "projection.CachedSource.Projection"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	if hit {
		if val == unavailableMarker {
			return 0, false, nil
		}
		price, parseErr := strconv.ParseInt(val, 10, 64)
		if parseErr == nil {
			return price, true, nil
		}
		c.logger.Warn("discarding malformed cache entry",
			zap.String("op", "projection.CachedSource.Projection"),
			zap.String("key", key),
			zap.String("value", val),
		)
	}

	price, ok, err := c.source.Projection(ctx, playerID, round)
	if err != nil {
		return 0, false, err
	}

	entry := unavailableMarker
	if ok {
		entry = strconv.FormatInt(price, 10)
	}
	if setErr := c.store.Set(ctx, key, entry, c.ttl); setErr != nil {
		c.logger.Warn("projection cache write failed",
			zap.String("op", "projection.CachedSource.Projection"),
			zap.String("key", key),
			zap.Error(setErr),
		)
	}
	return price, ok, nil
}
