// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"sort"

	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/index"
	"github.com/tomtom215/marquee/internal/textsim"
)

// BaseSignal provides the reason tag shared by every signal.
type BaseSignal struct {
	reason recommend.Reason
}

// NewBaseSignal creates a base signal with the given reason.
func NewBaseSignal(reason recommend.Reason) BaseSignal {
	return BaseSignal{reason: reason}
}

// Reason returns the tag attached to the signal's candidates.
func (b *BaseSignal) Reason() recommend.Reason {
	return b.reason
}

// candidates turns row numbers into tagged candidates, keeping order.
func (b *BaseSignal) candidates(idx *index.Index, rows []int) []recommend.Candidate {
	if len(rows) == 0 {
		return nil
	}
	out := make([]recommend.Candidate, len(rows))
	for i, r := range rows {
		out[i] = recommend.Candidate{Title: idx.Record(r).Title, Reason: b.reason}
	}
	return out
}

// Hybrid returns the six single-title signals in fusion order: cast,
// director, genre, TF-IDF, writer and fuzzy title.
func Hybrid(m textsim.Matcher) []recommend.Signal {
	return []recommend.Signal{
		NewCastOverlap(),
		NewSameDirector(),
		NewSameGenre(),
		NewTFIDF(),
		NewSameWriter(),
		NewFuzzyTitle(m),
	}
}

// source resolves the source row. ok is false for unknown titles.
func source(idx *index.Index, title string) (row int, key string, ok bool) {
	row, ok = idx.Lookup(title)
	if !ok {
		return 0, "", false
	}
	return row, idx.Key(row), true
}

// matching collects up to topN rows accepted by keep, in corpus order,
// skipping rows titled like the source and repeated titles.
func matching(idx *index.Index, sourceKey string, topN int, keep func(r *index.Record) bool) []int {
	var rows []int
	seen := make(map[string]struct{})
	for i := 0; i < idx.Len() && len(rows) < topN; i++ {
		if idx.Key(i) == sourceKey {
			continue
		}
		rec := idx.Record(i)
		if !keep(rec) {
			continue
		}
		if _, dup := seen[rec.Title]; dup {
			continue
		}
		seen[rec.Title] = struct{}{}
		rows = append(rows, i)
	}
	return rows
}

// ranked returns up to topN rows ordered by score descending, ties in corpus
// order, skipping rows titled like the source.
func ranked(idx *index.Index, sourceKey string, scores []float64, topN int) []int {
	order := make([]int, 0, len(scores))
	for i := range scores {
		if idx.Key(i) != sourceKey {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	return order
}
