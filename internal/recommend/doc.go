// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend implements the hybrid movie recommendation engine.
//
// # Architecture
//
// Two query shapes run against an immutable index.Index:
//
//   - Single title: every registered Signal produces candidates, Fuse
//     weights them by reason, drops the source, keeps the first
//     occurrence of each title, sorts and truncates (45 by default).
//   - Watchlist: input titles are resolved by fuzzy matching (cutoff 0.7),
//     the TF-IDF rows of the resolved titles are averaged into a centroid
//     and the corpus is ranked by cosine similarity to it.
//
// # Outcomes
//
// Queries never fail because of their input. An unknown title gives an
// empty result. A watchlist that resolves to fewer than two titles returns
// the FallbackInsufficient list, and a failure while ranking (a panic
// included) returns the FallbackFailure list. Result.Outcome tells which.
//
// # Publishing
//
// The Engine holds the active index in an atomic pointer. Build or Swap
// publishes a new index without blocking queries in flight; each swap bumps
// the generation and clears the response cache.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	for _, s := range algorithms.Hybrid(nil) {
//	    engine.RegisterSignal(s)
//	}
//	engine.Build(records)
//
//	res, err := engine.RecommendSingle(ctx, "Heat", 0)
//	res, err = engine.RecommendFromWatchlist(ctx, []string{"heat", "ronin"}, 0)
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use.
package recommend
