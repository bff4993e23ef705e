// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"sort"

	"github.com/tomtom215/marquee/internal/recommend/index"
)

// DefaultCap is the maximum length of a single-title result.
const DefaultCap = 45

// Weights maps each signal reason to the score its candidates receive.
type Weights map[Reason]float64

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		ReasonCast:     1.0,
		ReasonDirector: 0.9,
		ReasonGenre:    0.8,
		ReasonTFIDF:    1.2,
		ReasonWriter:   0.85,
		ReasonTitle:    0.7,
	}
}

// Fuse merges signal outputs into one ranked list.
//
// Lists are concatenated in the given order and every candidate is scored
// with its reason's weight. Entries naming the source title are dropped and
// the first occurrence of each title wins, even when a later list carries a
// higher weight. The survivors are stably sorted by score and truncated to
// limit (DefaultCap when limit <= 0).
func Fuse(source string, lists [][]Candidate, weights Weights, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultCap
	}
	sourceKey := index.NormalizeTitle(source)

	seen := make(map[string]struct{})
	var merged []Candidate
	for _, list := range lists {
		for _, c := range list {
			if index.NormalizeTitle(c.Title) == sourceKey {
				continue
			}
			if _, dup := seen[c.Title]; dup {
				continue
			}
			seen[c.Title] = struct{}{}
			c.Score = weights[c.Reason]
			merged = append(merged, c)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// RecommendSingle runs every signal for title in order and fuses the output.
// An unknown title yields an empty result; it is never an error.
func RecommendSingle(idx *index.Index, signals []Signal, weights Weights, title string, opts SignalOptions, limit int) Result {
	if _, ok := idx.Lookup(title); !ok {
		return Result{Items: []Candidate{}, Outcome: OutcomeSuccess}
	}

	lists := make([][]Candidate, 0, len(signals))
	for _, s := range signals {
		lists = append(lists, s.Candidates(idx, title, opts.topN(s.Reason())))
	}

	items := Fuse(title, lists, weights, limit)
	if items == nil {
		items = []Candidate{}
	}
	return Result{Items: items, Outcome: OutcomeSuccess}
}

// SignalOptions sets how many candidates each signal contributes.
type SignalOptions struct {
	// TopN applies to every signal except the fuzzy title signal.
	// Default: 10
	TopN int

	// TitleTopN applies to the fuzzy title signal.
	// Default: 5
	TitleTopN int
}

// DefaultSignalOptions returns the production signal sizes.
func DefaultSignalOptions() SignalOptions {
	return SignalOptions{TopN: 10, TitleTopN: 5}
}

func (o SignalOptions) topN(r Reason) int {
	if r == ReasonTitle {
		if o.TitleTopN > 0 {
			return o.TitleTopN
		}
		return 5
	}
	if o.TopN > 0 {
		return o.TopN
	}
	return 10
}
