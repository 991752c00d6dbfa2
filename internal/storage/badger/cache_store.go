package badger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/models"
)

// CacheStore implements interfaces.CacheStore using BadgerDB, so cached
// provider payloads survive a process restart. Entries are still subject to
// the cache TTL on read; surviving on disk never extends their validity.
type CacheStore struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewCacheStore creates a cache store backed by BadgerDB.
func NewCacheStore(db *BadgerDB, logger *common.Logger) *CacheStore {
	return &CacheStore{
		db:     db,
		logger: logger,
	}
}

// Get retrieves an entry by key.
func (s *CacheStore) Get(_ context.Context, key string) (*models.CacheEntry, bool, error) {
	var entry models.CacheEntry
	err := s.db.Store().Get(key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return &entry, true, nil
}

// Set stores an entry, replacing any prior value for its key.
func (s *CacheStore) Set(_ context.Context, entry *models.CacheEntry) error {
	if err := s.db.Store().Upsert(entry.Key, entry); err != nil {
		return fmt.Errorf("failed to set key %s: %w", entry.Key, err)
	}
	return nil
}

// Delete removes an entry.
func (s *CacheStore) Delete(_ context.Context, key string) error {
	err := s.db.Store().Delete(key, models.CacheEntry{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys.
func (s *CacheStore) Keys(_ context.Context) ([]string, error) {
	var entries []models.CacheEntry
	if err := s.db.Store().Find(&entries, nil); err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.Key)
	}
	return keys, nil
}

// Close closes the underlying database.
func (s *CacheStore) Close() error {
	return s.db.Close()
}
