// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - recommendation query outcomes and latency
  - response cache hit/miss rates
  - catalog reloads and the published index
  - circuit breaker state transitions

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Recommendation Engine

RecommendObserver adapts the engine's Observer hooks:

	engine, err := recommend.NewEngine(cfg, logger,
	    recommend.WithObserver(metrics.RecommendObserver{}))

All metrics are registered with the default registry through promauto, so
importing the package is enough to expose them.
*/
package metrics
