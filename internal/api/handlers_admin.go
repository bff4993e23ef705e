// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

const reloadEndpoint = "/api/v1/admin/reload"

// ReloadResponse reports whether a reload was queued.
type ReloadResponse struct {
	Queued bool   `json:"queued"`
	Status string `json:"status"`
}

// TriggerReload handles POST /api/v1/admin/reload
// The reload runs in the background; 202 means it was queued or one is
// already pending. Requests beyond the token bucket get 429.
func (h *Handler) TriggerReload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.reloader == nil {
		rw.ServiceUnavailable(errReloadUnavailable.Error())
		return
	}
	if !h.limiter.Allow() {
		metrics.APIRateLimitHits.WithLabelValues(reloadEndpoint).Inc()
		logging.Ctx(r.Context()).Warn().Msg("Catalog reload rate limited")
		rw.TooManyRequests("Catalog reload requested too often, retry later")
		return
	}

	queued := h.reloader.Trigger()
	status := "queued"
	if !queued {
		status = "already_pending"
	}
	logging.Ctx(r.Context()).Info().Str("status", status).Msg("Catalog reload requested")
	rw.Accepted(ReloadResponse{Queued: queued, Status: status})
}
