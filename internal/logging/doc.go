// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides the process-wide zerolog logger for Marquee.
//
// JSON output is the default; console output (zerolog.ConsoleWriter) is meant
// for local development and the CLI.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("movies", n).Msg("catalog loaded")
//	logging.Ctx(ctx).Warn().Str("title", t).Msg("watchlist title unresolved")
//
// Request and correlation IDs are carried in the context and attached by Ctx.
// SlogHandler bridges slog-only libraries (suture's event hook) to zerolog.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
