// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/index"
)

var _ recommend.Signal = (*CastOverlap)(nil)

// CastOverlap ranks rows by the size of the intersection between their cast
// and the source's cast. Rows sharing nobody score 0 and still rank, after
// every row with an overlap.
type CastOverlap struct {
	BaseSignal
}

// NewCastOverlap creates the cast overlap signal.
func NewCastOverlap() *CastOverlap {
	return &CastOverlap{BaseSignal: NewBaseSignal(recommend.ReasonCast)}
}

// Candidates implements recommend.Signal.
func (s *CastOverlap) Candidates(idx *index.Index, title string, topN int) []recommend.Candidate {
	src, key, ok := source(idx, title)
	if !ok || topN <= 0 {
		return nil
	}
	cast := idx.Record(src).Cast
	if len(cast) == 0 {
		return nil
	}

	want := make(map[string]struct{}, len(cast))
	for _, name := range cast {
		want[name] = struct{}{}
	}

	scores := make([]float64, idx.Len())
	for i := range scores {
		scores[i] = float64(overlap(want, idx.Record(i).Cast))
	}
	return s.candidates(idx, ranked(idx, key, scores, topN))
}

// overlap counts the distinct names of cast that appear in want.
func overlap(want map[string]struct{}, cast []string) int {
	n := 0
	seen := make(map[string]struct{}, len(cast))
	for _, name := range cast {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := want[name]; ok {
			n++
		}
	}
	return n
}
