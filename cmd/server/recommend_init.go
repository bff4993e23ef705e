// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
	"github.com/tomtom215/marquee/internal/supervisor/services"
	"github.com/tomtom215/marquee/internal/textsim"
)

// RecommendComponents holds the recommendation engine and the catalog
// pipeline that feeds it.
type RecommendComponents struct {
	Engine   *recommend.Engine
	Library  *catalog.Library
	Catalog  *services.CatalogService
	Snapshot *catalog.SnapshotStore
}

// Close releases the snapshot store.
func (c *RecommendComponents) Close() error {
	if c.Snapshot == nil {
		return nil
	}
	return c.Snapshot.Close()
}

// initRecommend builds the engine with the hybrid signal set, the catalog
// source and snapshot, and the catalog reload service.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger,
		recommend.WithObserver(metrics.RecommendObserver{}),
		recommend.WithMatcher(textsim.Default),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	for _, s := range algorithms.Hybrid(textsim.Default) {
		engine.RegisterSignal(s)
	}

	source, err := catalog.NewSource(cfg.Catalog.Path, cfg.Catalog.URL, cfg.Catalog.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("configure catalog source: %w", err)
	}

	c := &RecommendComponents{
		Engine:  engine,
		Library: catalog.NewLibrary(),
	}

	// The snapshot is optional: without it the service still runs, it just
	// cannot start while the primary source is down.
	var snapshot services.SnapshotStore
	if cfg.Catalog.SnapshotPath != "" {
		store, err := catalog.OpenSnapshot(catalog.SnapshotConfig{Path: cfg.Catalog.SnapshotPath})
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Catalog.SnapshotPath).Msg("catalog snapshot unavailable, continuing without it")
		} else {
			c.Snapshot = store
			snapshot = store
		}
	}

	c.Catalog = services.NewCatalogService(source, snapshot, engine, c.Library, services.CatalogServiceConfig{
		ReloadInterval: cfg.Catalog.ReloadInterval,
	}, logger)

	logger.Info().
		Stringer("source", source).
		Int("signals", len(engine.Signals())).
		Dur("reload_interval", cfg.Catalog.ReloadInterval).
		Bool("snapshot", c.Snapshot != nil).
		Msg("recommendation engine initialized")

	return c, nil
}
