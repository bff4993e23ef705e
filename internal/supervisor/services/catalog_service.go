// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend/index"
)

// IndexBuilder builds and publishes a recommendation index.
// Satisfied by *recommend.Engine.
type IndexBuilder interface {
	Build(records []index.Record) uint64
}

// SnapshotStore persists the last good catalog.
// Satisfied by *catalog.SnapshotStore.
type SnapshotStore interface {
	Load(ctx context.Context) ([]catalog.Movie, error)
	Save(ctx context.Context, movies []catalog.Movie, source string) (catalog.SnapshotMeta, error)
	String() string
}

// CatalogServiceConfig holds configuration for the catalog reload service.
type CatalogServiceConfig struct {
	// ReloadInterval is how often the catalog is reloaded. 0 disables
	// periodic reloads; Trigger still works.
	ReloadInterval time.Duration

	// RetryInterval replaces ReloadInterval while no catalog has been
	// published yet.
	// Default: 30s
	RetryInterval time.Duration

	// LoadTimeout bounds a single reload.
	// Default: 5m
	LoadTimeout time.Duration
}

// ReloadStatus describes the last reload attempt.
type ReloadStatus struct {
	At         time.Time
	Source     string
	Movies     int
	Generation uint64
	Fallback   bool
	Err        error
}

// CatalogService loads the catalog, builds the recommendation index off the
// request path and swaps both in. It runs under the data layer supervisor.
//
// Load order:
//  1. the primary source (CSV file or URL)
//  2. the badger snapshot, when the primary fails
//
// A catalog loaded from the primary source is written back to the snapshot.
type CatalogService struct {
	primary  catalog.Source
	snapshot SnapshotStore
	engine   IndexBuilder
	library  *catalog.Library
	config   CatalogServiceConfig
	logger   zerolog.Logger
	name     string

	trigger chan struct{}

	// reloadMu serializes reloads started by Serve and by direct Reload calls.
	reloadMu sync.Mutex

	statusMu sync.RWMutex
	status   ReloadStatus
}

// NewCatalogService creates a catalog reload service. snapshot may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(primary catalog.Source, snapshot SnapshotStore, engine IndexBuilder, library *catalog.Library, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 30 * time.Second
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 5 * time.Minute
	}
	return &CatalogService{
		primary:  primary,
		snapshot: snapshot,
		engine:   engine,
		library:  library,
		config:   cfg,
		logger:   logger.With().Str("service", "catalog").Logger(),
		name:     "catalog-service",
		trigger:  make(chan struct{}, 1),
	}
}

// Serve implements the suture.Service interface.
// It loads the catalog at once, then on every tick and every Trigger.
func (s *CatalogService) Serve(ctx context.Context) error {
	s.logger.Info().
		Stringer("source", s.primary).
		Dur("reload_interval", s.config.ReloadInterval).
		Msg("catalog service starting")

	if err := s.Reload(ctx); err != nil {
		s.logger.Error().Err(err).Msg("initial catalog load failed (will retry)")
	}

	timer := time.NewTimer(s.nextDelay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog service shutting down")
			return ctx.Err()

		case <-timer.C:
			s.logger.Debug().Msg("scheduled catalog reload")
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled catalog reload failed")
			}

		case <-s.trigger:
			s.logger.Info().Msg("manual catalog reload")
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("manual catalog reload failed")
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		timer.Reset(s.nextDelay())
	}
}

// nextDelay returns the wait before the next scheduled reload. With periodic
// reloads disabled and a catalog loaded, the timer effectively never fires.
func (s *CatalogService) nextDelay() time.Duration {
	if s.library.Current() == nil {
		return s.config.RetryInterval
	}
	if s.config.ReloadInterval <= 0 {
		return time.Duration(1<<63 - 1)
	}
	return s.config.ReloadInterval
}

// Trigger requests a reload from the Serve loop. It reports false when a
// request is already pending.
func (s *CatalogService) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Reload performs one load, build and swap cycle.
func (s *CatalogService) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.config.LoadTimeout)
	defer cancel()

	start := time.Now()
	status := ReloadStatus{At: start}

	movies, source, fallback, err := s.load(ctx)
	if err != nil {
		status.Err = err
		s.setStatus(status)
		return err
	}

	c := catalog.New(movies, source)
	gen := s.engine.Build(c.Records())
	s.library.Publish(c)

	if !fallback && s.snapshot != nil {
		if meta, err := s.snapshot.Save(ctx, movies, source); err != nil {
			s.logger.Warn().Err(err).Msg("failed to persist catalog snapshot")
		} else {
			s.logger.Debug().Str("build_id", meta.BuildID).Int("movies", meta.Count).Msg("catalog snapshot saved")
		}
	}

	metrics.RecordCatalogReload(time.Since(start))
	s.logger.Info().
		Str("source", source).
		Int("movies", c.Len()).
		Uint64("generation", gen).
		Bool("fallback", fallback).
		Dur("duration", time.Since(start)).
		Msg("catalog reloaded")

	status.Source = source
	status.Movies = c.Len()
	status.Generation = gen
	status.Fallback = fallback
	s.setStatus(status)
	return nil
}

// load tries the primary source, then the snapshot.
func (s *CatalogService) load(ctx context.Context) (movies []catalog.Movie, source string, fallback bool, err error) {
	movies, err = s.primary.Load(ctx)
	metrics.RecordCatalogLoad("primary", err)
	if err == nil {
		return movies, s.primary.String(), false, nil
	}
	primaryErr := fmt.Errorf("load %s: %w", s.primary, err)

	if s.snapshot == nil {
		return nil, "", false, primaryErr
	}

	s.logger.Warn().Err(err).Stringer("source", s.primary).Msg("primary catalog source failed, using snapshot")
	movies, err = s.snapshot.Load(ctx)
	metrics.RecordCatalogLoad("snapshot", err)
	if err != nil {
		return nil, "", false, errors.Join(primaryErr, fmt.Errorf("load %s: %w", s.snapshot, err))
	}
	return movies, s.snapshot.String(), true, nil
}

func (s *CatalogService) setStatus(st ReloadStatus) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status = st
}

// Status returns the outcome of the last reload attempt.
func (s *CatalogService) Status() ReloadStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// String returns the service name for logging.
func (s *CatalogService) String() string {
	return s.name
}
