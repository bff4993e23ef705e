// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package textsim provides string similarity used for fuzzy title matching.
//
// The default Matcher is a Ratcliff/Obershelp "gestalt pattern matching"
// ratio: 2*M/T, where M is the number of characters in the matching blocks
// found by recursively taking the longest common substring, and T is the
// total number of characters in both strings. Two empty strings have ratio 1.
//
// CloseMatches mirrors the familiar "get close matches" contract: candidates
// are screened with two cheap upper bounds before the full ratio is computed,
// only candidates at or above the cutoff are kept, and the best n are
// returned ordered by score (ties broken by the larger candidate string).
package textsim
