// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
	"github.com/tomtom215/marquee/internal/textsim"
)

var errNoSnapshotPath = errors.New("no snapshot path configured (set SNAPSHOT_PATH)")

type commandContext struct {
	configFlag   *string
	snapshotFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     zerolog.Logger
}

func newCommandContext(configFlag *string, snapshotFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		snapshotFlag: snapshotFlag,
		logger:       logging.NewNop(),
	}
}

// ensureConfig loads configuration once. Logs go to stderr at warn level
// unless LOG_LEVEL asks for more, so table output on stdout stays clean.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.LoadFile(path)
		if err != nil {
			c.configErr = err
			return
		}
		level := cfg.Logging.Level
		if level == "info" {
			level = "warn"
		}
		logging.Init(logging.Config{
			Level:  level,
			Format: "console",
			Output: cmd.ErrOrStderr(),
		})
		c.logger = logging.Logger()
		c.config = cfg
	})
	return c.config, c.configErr
}

// loadCatalog reads the catalog from the primary source, or from the
// snapshot when --from-snapshot is set.
func (c *commandContext) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cfg := c.config
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}

	if c.snapshotFlag != nil && *c.snapshotFlag {
		if cfg.Catalog.SnapshotPath == "" {
			return nil, errNoSnapshotPath
		}
		store, err := catalog.OpenSnapshot(catalog.SnapshotConfig{Path: cfg.Catalog.SnapshotPath})
		if err != nil {
			return nil, err
		}
		defer store.Close()
		movies, err := store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", store, err)
		}
		return catalog.New(movies, store.String()), nil
	}

	source, err := catalog.NewSource(cfg.Catalog.Path, cfg.Catalog.URL, cfg.Catalog.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	movies, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	return catalog.New(movies, source.String()), nil
}

// loadEngine loads the catalog and builds a ready engine over it.
func (c *commandContext) loadEngine(ctx context.Context) (*recommend.Engine, *catalog.Catalog, error) {
	cat, err := c.loadCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	engineCfg := c.config.EngineConfig()
	// one query per process: the cache would never be hit
	engineCfg.Cache.Enabled = false

	engine, err := recommend.NewEngine(engineCfg, c.logger, recommend.WithMatcher(textsim.Default))
	if err != nil {
		return nil, nil, err
	}
	for _, s := range algorithms.Hybrid(textsim.Default) {
		engine.RegisterSignal(s)
	}
	engine.Build(cat.Records())
	return engine, cat, nil
}
