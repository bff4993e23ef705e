// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"github.com/tomtom215/marquee/internal/recommend"
)

// EngineConfig maps the recommend section onto the engine's configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Weights: recommend.SignalWeights{
			Cast:     r.Weights.Cast,
			Director: r.Weights.Director,
			Genre:    r.Weights.Genre,
			TFIDF:    r.Weights.TFIDF,
			Writer:   r.Weights.Writer,
			Title:    r.Weights.Title,
		},
		Limits: recommend.LimitsConfig{
			Cap:              r.Cap,
			MaxCap:           r.MaxCap,
			SignalTopN:       r.SignalTopN,
			TitleTopN:        r.FuzzyTopN,
			WatchlistTopN:    r.WatchlistTopN,
			MaxWatchlistTopN: r.MaxWatchlistTopN,
		},
		Fuzzy: recommend.FuzzyConfig{
			Cutoff: r.FuzzyCutoff,
		},
		Index: recommend.IndexConfig{
			MaxFeatures: r.MaxFeatures,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheSize,
		},
	}
}
