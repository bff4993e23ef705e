// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/marquee/internal/recommend/index"
	"github.com/tomtom215/marquee/internal/textsim"
)

const (
	// DefaultFuzzyCutoff is the minimum ratio for a watchlist title to resolve.
	DefaultFuzzyCutoff = 0.7

	// DefaultWatchlistTopN is the watchlist result length.
	DefaultWatchlistTopN = 20

	// minResolved is the number of resolved titles a centroid needs.
	minResolved = 2
)

var errNoRows = errors.New("no resolved title has an index row")

// WatchlistOptions configures RecommendFromWatchlist.
type WatchlistOptions struct {
	// TopN is the result length. Default: 20
	TopN int

	// Cutoff is the fuzzy resolution threshold in [0, 1]. Default: 0.7
	Cutoff float64

	// Matcher scores title similarity. Default: textsim.Default
	Matcher textsim.Matcher
}

// DefaultWatchlistOptions returns the production watchlist settings.
func DefaultWatchlistOptions() WatchlistOptions {
	return WatchlistOptions{
		TopN:    DefaultWatchlistTopN,
		Cutoff:  DefaultFuzzyCutoff,
		Matcher: textsim.Default,
	}
}

// Resolve maps loosely typed titles onto corpus keys. Each input is trimmed
// and lowercased, then matched against the lowercase corpus titles; the best
// match at or above cutoff wins. Inputs with no match are returned in
// unresolved. Two inputs resolving to the same title both count.
func Resolve(idx *index.Index, titles []string, m textsim.Matcher, cutoff float64) (resolved, unresolved []string) {
	keys := idx.Keys()
	for _, t := range titles {
		word := strings.ToLower(strings.TrimSpace(t))
		if match, ok := textsim.Best(m, word, keys, cutoff); ok {
			resolved = append(resolved, match)
			continue
		}
		unresolved = append(unresolved, t)
	}
	return resolved, unresolved
}

// RecommendFromWatchlist ranks the corpus against the centroid of the
// watchlist's TF-IDF rows.
//
// Fewer than two resolved titles return FallbackInsufficient. Any failure
// while ranking, panics included, returns FallbackFailure with Err set.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func RecommendFromWatchlist(idx *index.Index, titles []string, opts WatchlistOptions) Result {
	if opts.TopN <= 0 {
		opts.TopN = DefaultWatchlistTopN
	}
	if opts.Matcher == nil {
		opts.Matcher = textsim.Default
	}

	resolved, unresolved := Resolve(idx, titles, opts.Matcher, opts.Cutoff)
	if len(resolved) < minResolved {
		r := FallbackInsufficient()
		r.Resolved, r.Unresolved = resolved, unresolved
		return r
	}

	items, err := rankByCentroid(idx, resolved, opts.TopN)
	if err != nil {
		r := FallbackFailure(err)
		r.Resolved, r.Unresolved = resolved, unresolved
		return r
	}
	return Result{
		Items:      items,
		Outcome:    OutcomeSuccess,
		Resolved:   resolved,
		Unresolved: unresolved,
	}
}

func rankByCentroid(idx *index.Index, keys []string, topN int) (items []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("watchlist ranking panicked: %v", r)
		}
	}()

	exclude := make(map[string]struct{}, len(keys))
	rows := make([]index.SparseVector, 0, len(keys))
	for _, k := range keys {
		exclude[k] = struct{}{}
		i, ok := idx.Lookup(k)
		if !ok {
			continue
		}
		rows = append(rows, idx.Row(i))
	}
	if len(rows) == 0 {
		return nil, errNoRows
	}

	sims := idx.Similarities(index.Mean(rows))
	order := make([]int, len(sims))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	items = make([]Candidate, 0, topN)
	for _, i := range order {
		if len(items) == topN {
			break
		}
		key := idx.Key(i)
		if _, skip := exclude[key]; skip {
			continue
		}
		exclude[key] = struct{}{}
		items = append(items, Candidate{
			Title:  idx.Record(i).Title,
			Reason: ReasonWatchlist,
			Score:  round3(sims[i]),
		})
	}
	return items, nil
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
