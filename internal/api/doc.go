// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP REST API layer for Marquee.

Routes:

	GET  /api/v1/health/live               liveness
	GET  /api/v1/health/ready              readiness (index published)
	GET  /api/v1/recommendations           ?movie=&cap= hybrid recommendations
	POST /api/v1/recommendations/watchlist {"titles":[...],"top_n":20}
	GET  /api/v1/movies/search             ?query=&limit= substring search
	GET  /api/v1/movies/details            ?title= exact lookup
	GET  /api/v1/explore                   ?genres=a,b browse lists
	GET  /api/v1/stats                     engine counters
	POST /api/v1/admin/reload              queue a catalog reload
	GET  /metrics                          Prometheus

Every JSON response uses the APIResponse envelope:

	{"success":true,"data":{...},"meta":{"request_id":"...","timestamp":"..."}}
	{"success":false,"error":{"code":"NOT_FOUND","message":"..."},"meta":{...}}

Watchlist fallbacks are not errors. They come back with 200 and the
outcome field set to fallback_insufficient or fallback_failure.

Usage Example:

	handler := api.NewHandler(engine, library, reloadService, cfg.API)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFrom(cfg.API))
	srv := &http.Server{Addr: ":8080", Handler: router.SetupChi()}
*/
package api
