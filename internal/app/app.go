// Package app wires configuration, storage, the provider client and the
// research service into the handler set the HTTP server mounts.
package app

import (
	"fmt"
	"time"

	"github.com/equitylens/equitylens/internal/cache"
	"github.com/equitylens/equitylens/internal/client"
	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/config"
	"github.com/equitylens/equitylens/internal/handlers"
	"github.com/equitylens/equitylens/internal/interfaces"
	"github.com/equitylens/equitylens/internal/mcp"
	"github.com/equitylens/equitylens/internal/research"
	"github.com/equitylens/equitylens/internal/storage"
	"github.com/equitylens/equitylens/internal/valuation"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Store    interfaces.CacheStore
	Cache    *cache.Cache
	Client   *client.AlphaVantageClient
	Research *research.Service

	// HTTP handlers
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	StockHandler   *handlers.StockHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	store, err := storage.NewCacheStore(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}
	a.Store = store

	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = common.FreshnessDefault
	}
	a.Cache = cache.New(store, ttl, cfg.Cache.MaxEntries)

	a.Client = client.NewAlphaVantageClient(&cfg.Provider, a.Cache, logger)

	assumptions := valuation.Assumptions{
		GrowthRate:          cfg.Valuation.GrowthRate,
		DiscountRate:        cfg.Valuation.DiscountRate,
		ForecastYears:       cfg.Valuation.ForecastYears,
		PerpetualGrowthRate: cfg.Valuation.PerpetualGrowthRate,
	}
	a.Research = research.NewService(a.Client, logger, assumptions)

	a.initHandlers()

	logger.Info().
		Str("provider", cfg.Provider.BaseURL).
		Str("storage", cfg.Storage.Backend).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.StockHandler = handlers.NewStockHandler(a.Logger, a.Research)
	a.MCPHandler = mcp.NewHandler(a.Research, a.Logger)
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return fmt.Errorf("failed to close cache store: %w", err)
		}
	}
	return nil
}
