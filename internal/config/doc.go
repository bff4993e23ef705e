// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

# Configuration Sources

Configuration is layered with koanf, lowest priority first:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
    /etc/marquee/config.yaml and /etc/marquee/config.yml
 3. Environment variables, mapped by name (see envMappings)

A .env file (or DOTENV_PATH) is loaded into the environment before the
layers are read. Variables already present in the environment win.

# Configuration Structure

  - ServerConfig: HTTP server settings (host, port, timeouts)
  - CatalogConfig: catalog CSV path or URL, snapshot path, reload interval
  - RecommendConfig: engine limits, fuzzy cutoff, cache and fusion weights
  - APIConfig: CORS, per-IP rate limiting, manual reload rate
  - LoggingConfig: level, format, caller
  - SupervisorConfig: suture failure threshold, decay, backoff, shutdown

# Environment Variables

Server:
  - HTTP_HOST (default: 0.0.0.0)
  - HTTP_PORT (default: 8080)
  - HTTP_TIMEOUT (default: 30s)
  - ENVIRONMENT: development, staging, production (default: development)

Catalog:
  - CATALOG_PATH (default: data/movies.csv)
  - CATALOG_URL: overrides CATALOG_PATH when set
  - SNAPSHOT_PATH (default: data/snapshot)
  - CATALOG_RELOAD_INTERVAL (default: 1h, 0 disables)

Recommendation:
  - RECOMMEND_CAP (default: 45)
  - RECOMMEND_WATCHLIST_TOP_N (default: 20)
  - RECOMMEND_FUZZY_CUTOFF (default: 0.7)
  - RECOMMEND_WEIGHT_CAST, _DIRECTOR, _GENRE, _TFIDF, _WRITER, _TITLE

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)
*/
package config
