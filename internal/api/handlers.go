// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Reloader starts a catalog reload. Trigger reports false when a reload is
// already pending.
type Reloader interface {
	Trigger() bool
}

// queryTimeout bounds a single recommendation query.
const queryTimeout = 10 * time.Second

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor
//   - handlers_helpers.go: Shared helper functions
//   - handlers_health.go: Liveness and readiness probes
//   - handlers_recommend.go: Single-title and watchlist recommendations
//   - handlers_movies.go: Catalog search, details and explore
//   - handlers_admin.go: Manual catalog reload
type Handler struct {
	engine    *recommend.Engine
	library   *catalog.Library
	reloader  Reloader
	limiter   *rate.Limiter
	config    config.APIConfig
	startTime time.Time
}

// NewHandler creates an API handler. reloader may be nil, in which case the
// reload endpoint answers 503.
//
// The reload limiter allows cfg.ReloadRate reloads per minute with a burst of
// cfg.ReloadBurst.
//
//nolint:gocritic // hugeParam: config copied once at startup
func NewHandler(engine *recommend.Engine, library *catalog.Library, reloader Reloader, cfg config.APIConfig) *Handler {
	burst := cfg.ReloadBurst
	if burst < 1 {
		burst = 1
	}
	return &Handler{
		engine:    engine,
		library:   library,
		reloader:  reloader,
		limiter:   rate.NewLimiter(rate.Limit(cfg.ReloadRate/60), burst),
		config:    cfg,
		startTime: time.Now(),
	}
}

// currentCatalog returns the published catalog or writes a 503.
func (h *Handler) currentCatalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	c := h.library.Current()
	if c == nil {
		NewResponseWriter(w, r).ServiceUnavailable(errCatalogNotLoaded.Error())
		return nil, false
	}
	return c, true
}
