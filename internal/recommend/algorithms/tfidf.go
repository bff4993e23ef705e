// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/index"
)

var _ recommend.Signal = (*TFIDF)(nil)

// TFIDF ranks rows by the cosine similarity between their profile vector
// and the source's. Ties go to the lower row.
type TFIDF struct {
	BaseSignal
}

// NewTFIDF creates the vector-space signal.
func NewTFIDF() *TFIDF {
	return &TFIDF{BaseSignal: NewBaseSignal(recommend.ReasonTFIDF)}
}

// Candidates implements recommend.Signal.
func (s *TFIDF) Candidates(idx *index.Index, title string, topN int) []recommend.Candidate {
	src, key, ok := source(idx, title)
	if !ok || topN <= 0 {
		return nil
	}
	sims := idx.Similarities(idx.Row(src))
	return s.candidates(idx, ranked(idx, key, sims, topN))
}
