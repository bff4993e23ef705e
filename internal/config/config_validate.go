// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCatalogSource is returned when neither a catalog path, URL nor
// snapshot path is configured.
var ErrNoCatalogSource = errors.New("one of CATALOG_PATH, CATALOG_URL or SNAPSHOT_PATH is required")

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateSupervisor(); err != nil {
		return err
	}
	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// validateCatalog validates catalog source configuration
func (c *Config) validateCatalog() error {
	if c.Catalog.Path == "" && c.Catalog.URL == "" && c.Catalog.SnapshotPath == "" {
		return ErrNoCatalogSource
	}
	if c.Catalog.URL != "" {
		if err := validateHTTPURL(c.Catalog.URL, "CATALOG_URL"); err != nil {
			return fmt.Errorf("CATALOG_URL is invalid: %w", err)
		}
		if c.Catalog.HTTPTimeout <= 0 {
			return fmt.Errorf("CATALOG_HTTP_TIMEOUT must be positive when CATALOG_URL is set")
		}
	}
	if c.Catalog.ReloadInterval < 0 {
		return fmt.Errorf("CATALOG_RELOAD_INTERVAL must not be negative")
	}
	return nil
}

// validateRecommend validates recommendation engine configuration. The
// engine validates the same values again when it is constructed.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.Cap < 1 || r.MaxCap < r.Cap {
		return fmt.Errorf("RECOMMEND_CAP must be positive and not above RECOMMEND_MAX_CAP")
	}
	if r.WatchlistTopN < 1 || r.MaxWatchlistTopN < r.WatchlistTopN {
		return fmt.Errorf("RECOMMEND_WATCHLIST_TOP_N must be positive and not above RECOMMEND_MAX_WATCHLIST_TOP_N")
	}
	if r.FuzzyCutoff < 0 || r.FuzzyCutoff > 1 {
		return fmt.Errorf("RECOMMEND_FUZZY_CUTOFF must be between 0 and 1")
	}
	if r.SignalTopN < 1 || r.FuzzyTopN < 1 {
		return fmt.Errorf("RECOMMEND_SIGNAL_TOP_N and RECOMMEND_FUZZY_TOP_N must be positive")
	}
	if r.MaxFeatures < 1 {
		return fmt.Errorf("RECOMMEND_MAX_FEATURES must be positive")
	}
	if r.CacheEnabled && (r.CacheSize < 1 || r.CacheTTL <= 0) {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE and RECOMMEND_CACHE_TTL must be positive when the cache is enabled")
	}
	w := r.Weights
	if w.Cast < 0 || w.Director < 0 || w.Genre < 0 || w.TFIDF < 0 || w.Writer < 0 || w.Title < 0 {
		return fmt.Errorf("recommend weights must not be negative")
	}
	return nil
}

// validateAPI validates API configuration
func (c *Config) validateAPI() error {
	for _, origin := range c.API.CORSOrigins {
		if origin == "*" && c.IsProduction() {
			return fmt.Errorf("CORS_ORIGINS must not contain * in production")
		}
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must start with http:// or https://", origin)
		}
	}
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 || c.API.RateLimitReqs > 100000 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.API.ReloadRate <= 0 || c.API.ReloadBurst < 1 {
		return fmt.Errorf("RELOAD_RATE and RELOAD_BURST must be positive")
	}
	if c.API.MaxWatchlistTitles < 2 {
		return fmt.Errorf("MAX_WATCHLIST_TITLES must be at least 2")
	}
	if c.API.SearchLimit < 1 {
		return fmt.Errorf("SEARCH_LIMIT must be positive")
	}
	return nil
}

// validateSupervisor validates supervisor tree configuration
func (c *Config) validateSupervisor() error {
	s := c.Supervisor
	if s.FailureThreshold <= 0 || s.FailureDecay <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD and SUPERVISOR_FAILURE_DECAY must be positive")
	}
	if s.FailureBackoff <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_BACKOFF and SUPERVISOR_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
