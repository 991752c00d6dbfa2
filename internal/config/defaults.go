package config

import "github.com/equitylens/equitylens/internal/common"

// NewDefaultConfig creates a configuration with default values.
//
// The valuation defaults deviate from the model's documented 10% growth /
// 8% discount pairing: that pairing violates the discount > growth invariant
// and can never produce a terminal value, so the shipped default growth rate
// is 6%.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4310,
			Host: "localhost",
		},
		Provider: ProviderConfig{
			BaseURL:        "https://alphavantage.p.rapidapi.com/query",
			APIHost:        "alphavantage.p.rapidapi.com",
			TimeoutSeconds: 15,
		},
		Cache: CacheConfig{
			TTLMinutes: 10,
			MaxEntries: 256,
		},
		Storage: StorageConfig{
			Backend: "memory",
			Badger: BadgerConfig{
				Path: "./data/equitylens",
			},
		},
		Valuation: ValuationConfig{
			GrowthRate:          0.06,
			DiscountRate:        0.08,
			ForecastYears:       5,
			PerpetualGrowthRate: 0.02,
		},
		Logging: common.LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
		},
	}
}
