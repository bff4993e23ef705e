// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of the catalog.
//
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK once a recommendation index has been published, 503 before.
//
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	data := map[string]interface{}{
		"ready_to_serve": stats.Ready,
		"records":        stats.Records,
		"generation":     stats.Generation,
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if c := h.library.Current(); c != nil {
		data["catalog_source"] = c.Source()
		data["catalog_loaded_at"] = c.LoadedAt()
	}

	rw := NewResponseWriter(w, r)
	if !stats.Ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Recommendation index not loaded", data)
		return
	}
	rw.Success(data)
}

// Stats returns engine counters.
//
// @Router /api/v1/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Stats())
}
