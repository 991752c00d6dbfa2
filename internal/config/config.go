package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/equitylens/equitylens/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig         `toml:"server"`
	Provider  ProviderConfig       `toml:"provider"`
	Cache     CacheConfig          `toml:"cache"`
	Storage   StorageConfig        `toml:"storage"`
	Valuation ValuationConfig      `toml:"valuation"`
	Logging   common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// ProviderConfig contains market-data provider settings.
// The credential travels in request headers, not the query string.
type ProviderConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	APIHost        string `toml:"api_host"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// CacheConfig contains response cache settings.
type CacheConfig struct {
	TTLMinutes int `toml:"ttl_minutes"`
	MaxEntries int `toml:"max_entries"`
}

// StorageConfig contains cache store settings.
// Backend can be "memory" (default) or "badger".
type StorageConfig struct {
	Backend string       `toml:"backend"`
	Badger  BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// ValuationConfig contains default DCF model assumptions. Callers can
// override any of them per request.
type ValuationConfig struct {
	GrowthRate          float64 `toml:"growth_rate"`
	DiscountRate        float64 `toml:"discount_rate"`
	ForecastYears       int     `toml:"forecast_years"`
	PerpetualGrowthRate float64 `toml:"perpetual_growth_rate"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies EQL_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("EQL_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("EQL_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if key := os.Getenv("EQL_PROVIDER_API_KEY"); key != "" {
		config.Provider.APIKey = key
	}
	if host := os.Getenv("EQL_PROVIDER_API_HOST"); host != "" {
		config.Provider.APIHost = host
	}
	if url := os.Getenv("EQL_PROVIDER_BASE_URL"); url != "" {
		config.Provider.BaseURL = url
	}
	if backend := os.Getenv("EQL_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if badgerPath := os.Getenv("EQL_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("EQL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns a list of configuration problems, empty when the config
// is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Provider.APIKey == "" {
		issues = append(issues, "provider.api_key is required (or set EQL_PROVIDER_API_KEY)")
	}
	if c.Provider.BaseURL == "" {
		issues = append(issues, "provider.base_url must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if c.Cache.TTLMinutes <= 0 {
		issues = append(issues, "cache.ttl_minutes must be positive")
	}
	if c.Storage.Backend != "" && c.Storage.Backend != "memory" && c.Storage.Backend != "badger" {
		issues = append(issues, fmt.Sprintf("storage.backend %q is not supported (use \"memory\" or \"badger\")", c.Storage.Backend))
	}
	if c.Storage.Backend == "badger" && c.Storage.Badger.Path == "" {
		issues = append(issues, "storage.badger.path is required when storage.backend is \"badger\"")
	}
	if c.Valuation.DiscountRate <= c.Valuation.GrowthRate {
		issues = append(issues, "valuation.discount_rate must exceed valuation.growth_rate")
	}
	if c.Valuation.DiscountRate <= c.Valuation.PerpetualGrowthRate {
		issues = append(issues, "valuation.discount_rate must exceed valuation.perpetual_growth_rate")
	}
	if c.Valuation.ForecastYears < 1 {
		issues = append(issues, "valuation.forecast_years must be at least 1")
	}

	return issues
}
