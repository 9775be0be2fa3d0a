package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

// DefaultCapacity is the default number of cached vectors.
const DefaultCapacity = 1000

// Cache memoizes embeddings from an ai.Embedder.
//
// A hit returns the stored vector with no external call; the vector is
// bit-identical to what the provider returned for the same normalized text.
// The cache never retries a failed provider call; retry policy belongs to
// the caller.
type Cache struct {
	embedder ai.Embedder
	capacity int
	logger   *slog.Logger

	mu      sync.Mutex
	entries *lru.Cache[string, []float32]
	group   singleflight.Group
	hits    uint64
	misses  uint64
}

// Option configures a Cache.
type Option func(*Cache) error

// WithCapacity sets the maximum number of cached vectors.
// Default is DefaultCapacity.
func WithCapacity(capacity int) Option {
	return func(c *Cache) error {
		if capacity < 1 {
			return fmt.Errorf("cache capacity must be positive, got %d", capacity)
		}
		c.capacity = capacity
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCache creates an embedding cache in front of the given embedder.
func NewCache(embedder ai.Embedder, opts ...Option) (*Cache, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	c := &Cache{
		embedder: embedder,
		capacity: DefaultCapacity,
		logger:   slog.Default().With("component", "embedding-cache"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	entries, err := lru.New[string, []float32](c.capacity)
	if err != nil {
		return nil, err
	}
	c.entries = entries

	return c, nil
}

// Embed returns the embedding vector for text, consulting the cache first.
//
// On a miss the provider is called with the normalized text, so a later hit
// for any trivially different spelling of the same query returns an
// identical vector. Concurrent misses for the same key make exactly one
// provider call. Returned vectors are shared and must not be modified.
//
// Provider failures are wrapped with core.ErrEmbeddingProvider and nothing
// is cached for the failed key.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := core.NormalizeText(text)

	c.mu.Lock()
	if vector, ok := c.entries.Get(key); ok {
		c.hits++
		c.mu.Unlock()
		return vector, nil
	}
	c.misses++
	c.mu.Unlock()

	result, err, _ := c.group.Do(key, func() (any, error) {
		vector, err := c.embedder.EmbedText(ctx, key)
		if err != nil {
			c.logger.Error("embedding provider call failed", "err", err)
			return nil, fmt.Errorf("%w: %w", core.ErrEmbeddingProvider, err)
		}

		c.mu.Lock()
		evicted := c.entries.Add(key, vector)
		c.mu.Unlock()
		if evicted {
			c.logger.Debug("evicted least-recently-used entry", "capacity", c.capacity)
		}

		return vector, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]float32), nil
}

// Contains reports whether text's normalized key is cached, without
// updating recency.
func (c *Cache) Contains(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Contains(core.NormalizeText(text))
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
}
