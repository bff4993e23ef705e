// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package algorithms implements the single-title signals of the hybrid engine.
//
// Each signal implements recommend.Signal and is registered with the engine,
// which runs them in registration order and fuses their output.
//
// # Signals
//
//   - CastOverlap ("Similar Cast"): rows ranked by the number of shared cast members.
//   - SameDirector ("Same Director"): rows with an identical director field.
//   - SameGenre ("Same Genre"): rows with an identical genre list.
//   - TFIDF ("TF-IDF Similar"): rows ranked by cosine similarity of profile vectors.
//   - SameWriter ("Same Writer"): rows with an identical writer field.
//   - FuzzyTitle ("Similar Title"): rows ranked by title similarity ratio.
//
// Ranked signals break score ties by corpus order and keep rows that repeat a
// title. Filter signals keep corpus order and drop repeated titles. Every signal skips rows whose title equals
// the source title and returns nil for titles the index does not know.
//
// # Thread Safety
//
// Signals hold no mutable state and read an immutable index, so one instance
// may serve any number of concurrent queries.
package algorithms
