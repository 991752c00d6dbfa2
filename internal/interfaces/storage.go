// Package interfaces defines service contracts for equitylens.
package interfaces

import (
	"context"

	"github.com/equitylens/equitylens/internal/models"
)

// CacheStore persists response-cache entries. Implementations can be swapped
// (in-memory now, BadgerDB when cached payloads should survive a restart).
// TTL enforcement is the cache's job, not the store's: a store returns
// whatever it holds and never ages entries out on its own.
type CacheStore interface {
	// Get returns the entry for key, or (nil, false) when absent.
	Get(ctx context.Context, key string) (*models.CacheEntry, bool, error)

	// Set stores an entry, unconditionally replacing any prior value for its key.
	Set(ctx context.Context, entry *models.CacheEntry) error

	// Delete removes an entry. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all stored keys.
	Keys(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
