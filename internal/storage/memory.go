// Package storage provides cache store implementations.
package storage

import (
	"context"
	"sync"

	"github.com/equitylens/equitylens/internal/models"
)

// MemoryStore is an in-process cache store backed by a map.
// Thread-safe with sync.RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]models.CacheEntry
}

// NewMemoryStore creates an empty in-memory cache store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]models.CacheEntry),
	}
}

// Get returns the entry for key, or (nil, false) when absent.
func (s *MemoryStore) Get(_ context.Context, key string) (*models.CacheEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers never alias the stored entry
	out := e
	return &out, true, nil
}

// Set stores an entry, replacing any prior value for its key.
func (s *MemoryStore) Set(_ context.Context, entry *models.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[entry.Key] = *entry
	return nil
}

// Delete removes an entry. Absent keys are a no-op.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Keys returns all stored keys.
func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
