// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"testing"

	"github.com/tomtom215/marquee/internal/recommend"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 65536 }, true},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, true},
		{"url only", func(c *Config) { c.Catalog.Path = ""; c.Catalog.URL = "https://example.com/movies.csv" }, false},
		{"bad url scheme", func(c *Config) { c.Catalog.URL = "ftp://example.com/movies.csv" }, true},
		{"url without timeout", func(c *Config) { c.Catalog.URL = "https://example.com/m.csv"; c.Catalog.HTTPTimeout = 0 }, true},
		{"snapshot only", func(c *Config) { c.Catalog.Path = "" }, false},
		{"negative reload", func(c *Config) { c.Catalog.ReloadInterval = -1 }, true},
		{"zero reload disables", func(c *Config) { c.Catalog.ReloadInterval = 0 }, false},
		{"cap above max", func(c *Config) { c.Recommend.Cap = 500 }, true},
		{"cutoff above one", func(c *Config) { c.Recommend.FuzzyCutoff = 1.1 }, true},
		{"zero fuzzy top n", func(c *Config) { c.Recommend.FuzzyTopN = 0 }, true},
		{"negative weight", func(c *Config) { c.Recommend.Weights.Genre = -0.1 }, true},
		{"cache disabled ignores size", func(c *Config) { c.Recommend.CacheEnabled = false; c.Recommend.CacheSize = 0 }, false},
		{"cache enabled needs size", func(c *Config) { c.Recommend.CacheSize = 0 }, true},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, true},
		{"explicit cors in production", func(c *Config) {
			c.Server.Environment = "production"
			c.API.CORSOrigins = []string{"https://marquee.example.com"}
		}, false},
		{"cors without scheme", func(c *Config) { c.API.CORSOrigins = []string{"example.com"} }, true},
		{"rate limit zero", func(c *Config) { c.API.RateLimitReqs = 0 }, true},
		{"rate limit disabled", func(c *Config) { c.API.RateLimitDisabled = true; c.API.RateLimitReqs = 0 }, false},
		{"reload rate zero", func(c *Config) { c.API.ReloadRate = 0 }, true},
		{"watchlist titles below two", func(c *Config) { c.API.MaxWatchlistTitles = 1 }, true},
		{"supervisor backoff zero", func(c *Config) { c.Supervisor.FailureBackoff = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfig_ValidateNoCatalogSource(t *testing.T) {
	cfg := defaultConfig()
	cfg.Catalog.Path = ""
	cfg.Catalog.SnapshotPath = ""
	if err := cfg.Validate(); !errors.Is(err, ErrNoCatalogSource) {
		t.Errorf("Validate() error = %v, want ErrNoCatalogSource", err)
	}
}

func TestConfig_EngineConfig(t *testing.T) {
	cfg := defaultConfig()

	got := cfg.EngineConfig()
	if err := got.Validate(); err != nil {
		t.Fatalf("EngineConfig().Validate() = %v", err)
	}

	want := recommend.DefaultConfig()
	if got.Weights != want.Weights {
		t.Errorf("Weights = %+v, want %+v", got.Weights, want.Weights)
	}
	if got.Limits != want.Limits {
		t.Errorf("Limits = %+v, want %+v", got.Limits, want.Limits)
	}
	if got.Fuzzy != want.Fuzzy || got.Index != want.Index || got.Cache != want.Cache {
		t.Errorf("EngineConfig() = %+v, want %+v", got, want)
	}

	cfg.Recommend.FuzzyTopN = 3
	if got := cfg.EngineConfig().Limits.TitleTopN; got != 3 {
		t.Errorf("TitleTopN = %d, want 3", got)
	}
}
