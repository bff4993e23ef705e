// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package index builds the immutable corpus index used by every recommendation query.
//
// An Index owns three position-aligned structures:
//
//   - the ordered movie records (corpus order decides every tie-break),
//   - one L2-normalized TF-IDF row per record,
//   - a lowercase-title to row map where the first row for a title wins.
//
// # Term Weighting
//
// Profile text is lowercased and split into runs of letters, digits and
// underscores; runs shorter than two characters and English stop words are
// dropped. The vocabulary is capped at MaxFeatures terms, keeping the terms
// with the highest total count across the corpus (ties in alphabetical order).
// Weights are raw counts multiplied by the smoothed inverse document frequency
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and each row is scaled to unit length. Rows with no vocabulary terms stay
// zero vectors, so their cosine with anything is 0.
//
// # Concurrency
//
// Build returns a value that is never mutated afterwards. Any number of
// goroutines may query an Index without locking; refreshing the catalog means
// building a new Index and publishing it atomically.
package index
