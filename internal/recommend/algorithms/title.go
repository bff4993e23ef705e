// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/index"
	"github.com/tomtom215/marquee/internal/textsim"
)

var _ recommend.Signal = (*FuzzyTitle)(nil)

// FuzzyTitle ranks rows by the similarity ratio between their lowercase
// title and the source's. Rows sharing a display title are all kept, as in
// the other scored signals; fusion drops the repeats.
type FuzzyTitle struct {
	BaseSignal
	matcher textsim.Matcher
}

// NewFuzzyTitle creates the fuzzy title signal. A nil matcher selects
// textsim.Default.
func NewFuzzyTitle(m textsim.Matcher) *FuzzyTitle {
	if m == nil {
		m = textsim.Default
	}
	return &FuzzyTitle{BaseSignal: NewBaseSignal(recommend.ReasonTitle), matcher: m}
}

// Candidates implements recommend.Signal.
func (s *FuzzyTitle) Candidates(idx *index.Index, title string, topN int) []recommend.Candidate {
	_, key, ok := source(idx, title)
	if !ok || topN <= 0 {
		return nil
	}

	scores := make([]float64, idx.Len())
	for i := range scores {
		scores[i] = s.matcher.Ratio(key, idx.Key(i))
	}

	return s.candidates(idx, ranked(idx, key, scores, topN))
}
