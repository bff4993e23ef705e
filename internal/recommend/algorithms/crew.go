// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/index"
)

var (
	_ recommend.Signal = (*SameDirector)(nil)
	_ recommend.Signal = (*SameWriter)(nil)
	_ recommend.Signal = (*SameGenre)(nil)
)

// SameDirector keeps rows whose director field equals the source's.
type SameDirector struct {
	BaseSignal
}

// NewSameDirector creates the same-director signal.
func NewSameDirector() *SameDirector {
	return &SameDirector{BaseSignal: NewBaseSignal(recommend.ReasonDirector)}
}

// Candidates implements recommend.Signal.
func (s *SameDirector) Candidates(idx *index.Index, title string, topN int) []recommend.Candidate {
	return s.sameField(idx, title, topN, func(r *index.Record) string { return r.Director })
}

// SameWriter keeps rows whose writer field equals the source's.
type SameWriter struct {
	BaseSignal
}

// NewSameWriter creates the same-writer signal.
func NewSameWriter() *SameWriter {
	return &SameWriter{BaseSignal: NewBaseSignal(recommend.ReasonWriter)}
}

// Candidates implements recommend.Signal.
func (s *SameWriter) Candidates(idx *index.Index, title string, topN int) []recommend.Candidate {
	return s.sameField(idx, title, topN, func(r *index.Record) string { return r.Writer })
}

// sameField keeps rows where field matches the source's non-empty value.
func (b *BaseSignal) sameField(idx *index.Index, title string, topN int, field func(*index.Record) string) []recommend.Candidate {
	src, key, ok := source(idx, title)
	if !ok || topN <= 0 {
		return nil
	}
	want := field(idx.Record(src))
	if want == "" {
		return nil
	}
	return b.candidates(idx, matching(idx, key, topN, func(r *index.Record) bool {
		return field(r) == want
	}))
}

// SameGenre keeps rows whose genre list equals the source's exactly. Overlap
// is not enough: "Action|Drama" does not match "Action".
type SameGenre struct {
	BaseSignal
}

// NewSameGenre creates the same-genre signal.
func NewSameGenre() *SameGenre {
	return &SameGenre{BaseSignal: NewBaseSignal(recommend.ReasonGenre)}
}

// Candidates implements recommend.Signal.
func (s *SameGenre) Candidates(idx *index.Index, title string, topN int) []recommend.Candidate {
	src, key, ok := source(idx, title)
	if !ok || topN <= 0 {
		return nil
	}
	rec := idx.Record(src)
	if len(rec.Genres) == 0 {
		return nil
	}
	return s.candidates(idx, matching(idx, key, topN, rec.SameGenres))
}
