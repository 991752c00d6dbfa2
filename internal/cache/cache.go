// Package cache implements the TTL response cache that sits between the
// provider client and the network. At most one fetch per (data kind, ticker)
// leaves the process within a freshness window, which is what keeps the
// provider's rate limits survivable.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/interfaces"
	"github.com/equitylens/equitylens/internal/models"
)

// Clock returns the current time. Injected so TTL behavior is testable
// without sleeping.
type Clock func() time.Time

// FetchFunc loads a payload from the network when the cache cannot serve it.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Cache is a TTL keyed store over a pluggable CacheStore backend.
// An entry past its TTL is treated as absent and removed lazily on read;
// stale data is never served.
type Cache struct {
	store      interfaces.CacheStore
	ttl        time.Duration
	maxEntries int
	clock      Clock

	mu    sync.Mutex // serializes capacity eviction on Put
	group singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the wall clock, for deterministic expiry tests.
func WithClock(clock Clock) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

// New creates a Cache over the given store with the given TTL and max entry
// count. maxEntries <= 0 disables the capacity cap.
func New(store interfaces.CacheStore, ttl time.Duration, maxEntries int, opts ...Option) *Cache {
	c := &Cache{
		store:      store,
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MakeKey builds a deterministic cache key from a data kind and ticker.
// Tickers are uppercased so "ibm" and "IBM" share one entry.
func MakeKey(kind, ticker string) string {
	return kind + ":" + strings.ToUpper(strings.TrimSpace(ticker))
}

// Get returns the cached payload for key if present and within TTL.
// An expired entry is deleted and reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}

	if !common.IsFresh(c.clock(), entry.StoredAt, c.ttl) {
		// Expired: remove lazily
		_ = c.store.Delete(ctx, key)
		return nil, false
	}

	return entry.Payload, true
}

// Put stores a payload with the current timestamp, unconditionally
// overwriting any prior entry for that key. Evicts the oldest entry when at
// capacity.
func (c *Cache) Put(ctx context.Context, key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 {
		if _, exists, _ := c.store.Get(ctx, key); !exists {
			if keys, err := c.store.Keys(ctx); err == nil && len(keys) >= c.maxEntries {
				c.evictOldest(ctx, keys)
			}
		}
	}

	_ = c.store.Set(ctx, &models.CacheEntry{
		Key:      key,
		Payload:  payload,
		StoredAt: c.clock(),
	})
}

// GetOrFetch returns the cached payload for key, or runs fetch and caches
// its result. Concurrent callers for the same key are coalesced into a
// single outstanding fetch whose result they all share. Errors are returned
// to every waiter and never cached.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) ([]byte, error) {
	if payload, ok := c.Get(ctx, key); ok {
		return payload, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A coalesced waiter may arrive after the winner already populated
		// the entry; re-check before going to the network.
		if payload, ok := c.Get(ctx, key); ok {
			return payload, nil
		}

		payload, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.Put(ctx, key, payload)
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// evictOldest removes the entry with the earliest StoredAt.
// Must be called with mu held.
func (c *Cache) evictOldest(ctx context.Context, keys []string) {
	var oldestKey string
	var oldestAt time.Time

	for _, key := range keys {
		entry, ok, err := c.store.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		if oldestKey == "" || entry.StoredAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.StoredAt
		}
	}

	if oldestKey != "" {
		_ = c.store.Delete(ctx, oldestKey)
	}
}
