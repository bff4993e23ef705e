// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	API        APIConfig        `koanf:"api"`
	Logging    LoggingConfig    `koanf:"logging"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings
//
// Environment Variables:
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_PORT: listen port (default: 8080)
//   - HTTP_TIMEOUT: request timeout (default: 30s)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// CatalogConfig holds catalog source settings.
//
// Environment Variables:
//   - CATALOG_PATH: CSV file on disk
//   - CATALOG_URL: CSV over HTTP, takes precedence over CATALOG_PATH
//   - SNAPSHOT_PATH: BadgerDB directory for the last good catalog
//   - CATALOG_RELOAD_INTERVAL: periodic reload, 0 disables (default: 1h)
type CatalogConfig struct {
	Path string `koanf:"path"`
	URL  string `koanf:"url"`

	// SnapshotPath is the badger directory. Empty disables snapshots.
	SnapshotPath string `koanf:"snapshot_path"`

	// ReloadInterval of 0 loads once at startup only.
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// HTTPTimeout bounds a remote catalog download.
	HTTPTimeout time.Duration `koanf:"http_timeout"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	Cap              int     `koanf:"cap"`
	MaxCap           int     `koanf:"max_cap"`
	WatchlistTopN    int     `koanf:"watchlist_top_n"`
	MaxWatchlistTopN int     `koanf:"max_watchlist_top_n"`
	FuzzyCutoff      float64 `koanf:"fuzzy_cutoff"`
	SignalTopN       int     `koanf:"signal_top_n"`
	FuzzyTopN        int     `koanf:"fuzzy_top_n"`
	MaxFeatures      int     `koanf:"max_features"`

	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheSize    int           `koanf:"cache_size"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`

	Weights WeightsConfig `koanf:"weights"`
}

// WeightsConfig holds the fusion weight of each signal.
type WeightsConfig struct {
	Cast     float64 `koanf:"cast"`
	Director float64 `koanf:"director"`
	Genre    float64 `koanf:"genre"`
	TFIDF    float64 `koanf:"tfidf"`
	Writer   float64 `koanf:"writer"`
	Title    float64 `koanf:"title"`
}

// APIConfig holds HTTP API settings
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// ReloadRate is the sustained rate of manual reloads per minute.
	ReloadRate  float64 `koanf:"reload_rate"`
	ReloadBurst int     `koanf:"reload_burst"`

	MaxWatchlistTitles int `koanf:"max_watchlist_titles"`
	SearchLimit        int `koanf:"search_limit"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SupervisorConfig holds suture supervisor tree settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
