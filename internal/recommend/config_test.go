// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("weights match fusion defaults", func(t *testing.T) {
		got := cfg.Weights.ToWeights()
		for reason, want := range DefaultWeights() {
			if got[reason] != want {
				t.Errorf("weight[%s] = %v, want %v", reason, got[reason], want)
			}
		}
	})

	t.Run("limits", func(t *testing.T) {
		if cfg.Limits.Cap != 45 {
			t.Errorf("Limits.Cap = %d, want 45", cfg.Limits.Cap)
		}
		if cfg.Limits.SignalTopN != 10 || cfg.Limits.TitleTopN != 5 {
			t.Errorf("signal sizes = %d/%d, want 10/5", cfg.Limits.SignalTopN, cfg.Limits.TitleTopN)
		}
		if cfg.Limits.WatchlistTopN != 20 {
			t.Errorf("Limits.WatchlistTopN = %d, want 20", cfg.Limits.WatchlistTopN)
		}
	})

	t.Run("fuzzy cutoff", func(t *testing.T) {
		if cfg.Fuzzy.Cutoff != 0.7 {
			t.Errorf("Fuzzy.Cutoff = %v, want 0.7", cfg.Fuzzy.Cutoff)
		}
	})

	t.Run("validates", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"default", func(c *Config) {}, false},
		{"negative weight", func(c *Config) { c.Weights.TFIDF = -1 }, true},
		{"zero weight allowed", func(c *Config) { c.Weights.Title = 0 }, false},
		{"zero cap", func(c *Config) { c.Limits.Cap = 0 }, true},
		{"max cap below cap", func(c *Config) { c.Limits.MaxCap = 10 }, true},
		{"zero signal top n", func(c *Config) { c.Limits.SignalTopN = 0 }, true},
		{"zero title top n", func(c *Config) { c.Limits.TitleTopN = 0 }, true},
		{"zero watchlist top n", func(c *Config) { c.Limits.WatchlistTopN = 0 }, true},
		{"max watchlist below default", func(c *Config) { c.Limits.MaxWatchlistTopN = 5 }, true},
		{"cutoff above one", func(c *Config) { c.Fuzzy.Cutoff = 1.5 }, true},
		{"negative cutoff", func(c *Config) { c.Fuzzy.Cutoff = -0.1 }, true},
		{"zero max features", func(c *Config) { c.Index.MaxFeatures = 0 }, true},
		{"zero ttl with cache", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"zero ttl without cache", func(c *Config) { c.Cache.Enabled = false; c.Cache.TTL = 0 }, false},
		{"zero entries with cache", func(c *Config) { c.Cache.MaxEntries = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.Limits.Cap = 1
	clone.Cache.TTL = time.Hour

	if cfg.Limits.Cap != 45 {
		t.Errorf("original Limits.Cap changed to %d", cfg.Limits.Cap)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("original Cache.TTL changed to %v", cfg.Cache.TTL)
	}
}

func TestConfig_Derived(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Index.MaxFeatures = 123
	cfg.Limits.SignalTopN = 7
	cfg.Limits.TitleTopN = 3

	if got := cfg.BuildConfig().MaxFeatures; got != 123 {
		t.Errorf("BuildConfig().MaxFeatures = %d, want 123", got)
	}
	opts := cfg.SignalOptions()
	if opts.topN(ReasonCast) != 7 || opts.topN(ReasonTitle) != 3 {
		t.Errorf("SignalOptions() = %+v", opts)
	}
}
