// Package config loads typed runtime settings from the environment.
// The keyword/feed/affiliate knowledge bases live in YAML files next
// to their consumers; this package only carries their paths.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Storage
	DatabaseURL   string // empty means JSON file store
	FileStorePath string

	// Knowledge base files (all optional, defaults compiled in)
	FeedsConfigPath      string
	KeywordsConfigPath   string
	AffiliatesConfigPath string

	// Scheduling
	ScrapeInterval  time.Duration
	RescoreInterval time.Duration

	// Poller settings
	FetchTimeout      time.Duration
	FetchWorkers      int
	FetchAttempts     int
	FetchRetryDelay   time.Duration
	MaxEntriesPerFeed int

	// Dedup cache
	SeenCacheTTL time.Duration

	// Maintenance
	RecategorizeOnStart bool

	// App settings
	Debug bool
}

func Load() *Config {
	cfg := &Config{
		// Default values
		FileStorePath:        "articles.json",
		FeedsConfigPath:      "configs/feeds.yaml",
		KeywordsConfigPath:   "configs/keywords.yaml",
		AffiliatesConfigPath: "configs/affiliates.yaml",
		ScrapeInterval:       5 * time.Minute,
		RescoreInterval:      60 * time.Minute,
		FetchTimeout:         15 * time.Second,
		FetchWorkers:         4,
		FetchAttempts:        2,
		FetchRetryDelay:      3 * time.Second,
		MaxEntriesPerFeed:    20,
		SeenCacheTTL:         24 * time.Hour,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.FileStorePath = getEnvOrDefault("FILE_STORE_PATH", cfg.FileStorePath)
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.KeywordsConfigPath = getEnvOrDefault("KEYWORDS_CONFIG_PATH", cfg.KeywordsConfigPath)
	cfg.AffiliatesConfigPath = getEnvOrDefault("AFFILIATES_CONFIG_PATH", cfg.AffiliatesConfigPath)

	cfg.ScrapeInterval = getEnvDurationOrDefault("SCRAPE_INTERVAL", cfg.ScrapeInterval)
	cfg.RescoreInterval = getEnvDurationOrDefault("RESCORE_INTERVAL", cfg.RescoreInterval)
	cfg.FetchTimeout = getEnvDurationOrDefault("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.FetchRetryDelay = getEnvDurationOrDefault("FETCH_RETRY_DELAY", cfg.FetchRetryDelay)
	cfg.SeenCacheTTL = getEnvDurationOrDefault("SEEN_CACHE_TTL", cfg.SeenCacheTTL)

	cfg.FetchWorkers = getEnvIntOrDefault("FETCH_WORKERS", cfg.FetchWorkers)
	cfg.FetchAttempts = getEnvIntOrDefault("FETCH_ATTEMPTS", cfg.FetchAttempts)
	cfg.MaxEntriesPerFeed = getEnvIntOrDefault("MAX_ENTRIES_PER_FEED", cfg.MaxEntriesPerFeed)

	if os.Getenv("RECATEGORIZE_ON_START") == "true" {
		cfg.RecategorizeOnStart = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
