package storage

import (
	"fmt"

	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/config"
	"github.com/equitylens/equitylens/internal/interfaces"
	"github.com/equitylens/equitylens/internal/storage/badger"
)

// NewCacheStore creates a cache store based on config.
func NewCacheStore(logger *common.Logger, cfg *config.Config) (interfaces.CacheStore, error) {
	switch cfg.Storage.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "badger":
		db, err := badger.NewBadgerDB(logger, &cfg.Storage.Badger)
		if err != nil {
			return nil, err
		}
		return badger.NewCacheStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
