package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache defaults.
const (
	DefaultCacheTTL        = 24 * time.Hour
	DefaultCacheMaxEntries = 10000
)

// CacheOptions configures a CachedEmbedder.
type CacheOptions struct {
	// Model is part of the cache key. Defaults to the wrapped embedder's
	// Model() when it has one.
	Model string
	// Redis enables the L2 tier when non-nil.
	Redis      *redis.Client
	TTL        time.Duration
	MaxEntries int
	Logger     *zap.Logger
}

// CachedEmbedder decorates an Embedder with an in-memory L1 cache and an
// optional Redis L2 cache. Cache failures never fail an Embed call.
type CachedEmbedder struct {
	inner      Embedder
	model      string
	l1         sync.Map // key -> *cacheEntry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	logger     *zap.Logger

	evictMu sync.Mutex
	hits    atomic.Int64
	misses  atomic.Int64
}

type cacheEntry struct {
	vec       []float32
	expiresAt time.Time
}

// NewCachedEmbedder wraps inner with a tiered cache.
func NewCachedEmbedder(inner Embedder, opts CacheOptions) *CachedEmbedder {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultCacheMaxEntries
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = modelOf(inner)
	}
	return &CachedEmbedder{
		inner:      inner,
		model:      model,
		rdb:        opts.Redis,
		ttl:        ttl,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// ConnectRedis parses a redis:// URL and verifies the server answers.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return rdb, nil
}

// CacheKey builds the cache key for a model and prepared input.
func CacheKey(model, text string) string {
	hash := sha256.Sum256([]byte(model + "|" + text))
	return fmt.Sprintf("emb:%x", hash[:16])
}

// Embed returns a cached vector when available and otherwise delegates to the
// wrapped embedder, storing the result in both tiers.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	input, err := PrepareInput(text)
	if err != nil {
		return nil, err
	}
	key := CacheKey(c.model, input)

	if vec, ok := c.get(ctx, key); ok {
		c.hits.Add(1)
		return vec, nil
	}
	c.misses.Add(1)

	vec, err := c.inner.Embed(ctx, input)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, vec)
	return vec, nil
}

// Stats returns cache hit and miss counts.
func (c *CachedEmbedder) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float32, bool) {
	if val, ok := c.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			return cloneVec(entry.vec), true
		}
		c.l1.Delete(key)
	}

	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("embedding cache: L2 get failed", zap.Error(err))
		}
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil || len(vec) == 0 {
		return nil, false
	}
	c.storeL1(key, vec)
	return cloneVec(vec), true
}

func (c *CachedEmbedder) set(ctx context.Context, key string, vec []float32) {
	c.storeL1(key, cloneVec(vec))

	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug("embedding cache: L2 set failed", zap.Error(err))
	}
}

func (c *CachedEmbedder) storeL1(key string, vec []float32) {
	c.evictIfNeeded()
	c.l1.Store(key, &cacheEntry{vec: vec, expiresAt: time.Now().Add(c.ttl)})
}

// evictIfNeeded drops expired entries, then the entries closest to expiry,
// until there is room for one more.
func (c *CachedEmbedder) evictIfNeeded() {
	c.evictMu.Lock()
	defer c.evictMu.Unlock()

	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if entry, ok := val.(*cacheEntry); ok && now.After(entry.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return true
	})

	for count >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			entry := val.(*cacheEntry)
			if oldestKey == nil || entry.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, entry.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

func cloneVec(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}

// modelOf returns the model name of e when it exposes one.
func modelOf(e Embedder) string {
	if m, ok := e.(interface{ Model() string }); ok {
		return strings.TrimSpace(m.Model())
	}
	return ""
}
