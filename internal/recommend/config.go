// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/recommend/index"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights is the score assigned to each signal's candidates.
	Weights SignalWeights `json:"weights"`

	// Limits contains result and signal sizes.
	Limits LimitsConfig `json:"limits"`

	// Fuzzy contains watchlist title resolution parameters.
	Fuzzy FuzzyConfig `json:"fuzzy"`

	// Index contains term weighting parameters.
	Index IndexConfig `json:"index"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// SignalWeights holds one weight per single-title signal.
type SignalWeights struct {
	Cast     float64 `json:"cast"`
	Director float64 `json:"director"`
	Genre    float64 `json:"genre"`
	TFIDF    float64 `json:"tfidf"`
	Writer   float64 `json:"writer"`
	Title    float64 `json:"title"`
}

// ToWeights converts the struct form to the map used by Fuse.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) ToWeights() Weights {
	return Weights{
		ReasonCast:     w.Cast,
		ReasonDirector: w.Director,
		ReasonGenre:    w.Genre,
		ReasonTFIDF:    w.TFIDF,
		ReasonWriter:   w.Writer,
		ReasonTitle:    w.Title,
	}
}

// LimitsConfig contains result and signal sizes.
type LimitsConfig struct {
	// Cap is the default single-title result length.
	// Default: 45.
	Cap int `json:"cap"`

	// MaxCap is the largest cap a caller may request.
	// Default: 200.
	MaxCap int `json:"max_cap"`

	// SignalTopN is how many candidates each signal contributes.
	// Default: 10.
	SignalTopN int `json:"signal_top_n"`

	// TitleTopN is how many candidates the fuzzy title signal contributes.
	// Default: 5.
	TitleTopN int `json:"title_top_n"`

	// WatchlistTopN is the default watchlist result length.
	// Default: 20.
	WatchlistTopN int `json:"watchlist_top_n"`

	// MaxWatchlistTopN is the largest watchlist result a caller may request.
	// Default: 100.
	MaxWatchlistTopN int `json:"max_watchlist_top_n"`
}

// FuzzyConfig contains watchlist resolution parameters.
type FuzzyConfig struct {
	// Cutoff is the minimum similarity ratio for a title to resolve.
	// Default: 0.7.
	Cutoff float64 `json:"cutoff"`
}

// IndexConfig contains term weighting parameters.
type IndexConfig struct {
	// MaxFeatures caps the vocabulary size.
	// Default: 5000.
	MaxFeatures int `json:"max_features"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached entries.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: SignalWeights{
			Cast:     1.0,
			Director: 0.9,
			Genre:    0.8,
			TFIDF:    1.2,
			Writer:   0.85,
			Title:    0.7,
		},
		Limits: LimitsConfig{
			Cap:              DefaultCap,
			MaxCap:           200,
			SignalTopN:       10,
			TitleTopN:        5,
			WatchlistTopN:    DefaultWatchlistTopN,
			MaxWatchlistTopN: 100,
		},
		Fuzzy: FuzzyConfig{
			Cutoff: DefaultFuzzyCutoff,
		},
		Index: IndexConfig{
			MaxFeatures: index.DefaultMaxFeatures,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	for name, w := range map[string]float64{
		"cast":     c.Weights.Cast,
		"director": c.Weights.Director,
		"genre":    c.Weights.Genre,
		"tfidf":    c.Weights.TFIDF,
		"writer":   c.Weights.Writer,
		"title":    c.Weights.Title,
	} {
		if w < 0 {
			return fmt.Errorf("weights.%s must be non-negative, got %f", name, w)
		}
	}

	if c.Limits.Cap < 1 {
		return fmt.Errorf("limits.cap must be positive, got %d", c.Limits.Cap)
	}
	if c.Limits.MaxCap < c.Limits.Cap {
		return fmt.Errorf("limits.max_cap must be >= limits.cap, got %d < %d", c.Limits.MaxCap, c.Limits.Cap)
	}
	if c.Limits.SignalTopN < 1 {
		return fmt.Errorf("limits.signal_top_n must be positive, got %d", c.Limits.SignalTopN)
	}
	if c.Limits.TitleTopN < 1 {
		return fmt.Errorf("limits.title_top_n must be positive, got %d", c.Limits.TitleTopN)
	}
	if c.Limits.WatchlistTopN < 1 {
		return fmt.Errorf("limits.watchlist_top_n must be positive, got %d", c.Limits.WatchlistTopN)
	}
	if c.Limits.MaxWatchlistTopN < c.Limits.WatchlistTopN {
		return fmt.Errorf("limits.max_watchlist_top_n must be >= limits.watchlist_top_n, got %d < %d",
			c.Limits.MaxWatchlistTopN, c.Limits.WatchlistTopN)
	}

	if c.Fuzzy.Cutoff < 0 || c.Fuzzy.Cutoff > 1 {
		return fmt.Errorf("fuzzy.cutoff must be in [0, 1], got %f", c.Fuzzy.Cutoff)
	}

	if c.Index.MaxFeatures < 1 {
		return fmt.Errorf("index.max_features must be positive, got %d", c.Index.MaxFeatures)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// all nested structs contain only value types
	clone := *c
	return &clone
}

// BuildConfig returns the index build settings.
func (c *Config) BuildConfig() index.BuildConfig {
	return index.BuildConfig{MaxFeatures: c.Index.MaxFeatures}
}

// SignalOptions returns the per-signal sizes.
func (c *Config) SignalOptions() SignalOptions {
	return SignalOptions{TopN: c.Limits.SignalTopN, TitleTopN: c.Limits.TitleTopN}
}
