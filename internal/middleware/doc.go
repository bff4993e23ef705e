// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Request ID: UUID-based request tracking. The ID is echoed in the
    X-Request-ID header and stored in the logging context together with a
    fresh correlation ID.
  - Prometheus Metrics: request count, latency and in-flight requests,
    labeled by chi route pattern.

Both are standard func(http.Handler) http.Handler middleware and plug into a
chi router:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

CORS, rate limiting and panic recovery come from go-chi/cors, go-chi/httprate
and chi's own middleware package; see internal/api.
*/
package middleware
