// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/marquee/internal/recommend/index"
)

// ErrIndexNotReady is returned by Engine queries before the first index is published.
var ErrIndexNotReady = errors.New("recommendation index not loaded")

// Reason tags a recommendation with the signal that produced it.
type Reason string

const (
	// ReasonCast marks titles sharing cast members with the source.
	ReasonCast Reason = "Similar Cast"
	// ReasonDirector marks titles with the source's director.
	ReasonDirector Reason = "Same Director"
	// ReasonGenre marks titles with the source's exact genre list.
	ReasonGenre Reason = "Same Genre"
	// ReasonTFIDF marks titles with a similar profile vector.
	ReasonTFIDF Reason = "TF-IDF Similar"
	// ReasonWriter marks titles with the source's writer.
	ReasonWriter Reason = "Same Writer"
	// ReasonTitle marks titles whose name resembles the source's.
	ReasonTitle Reason = "Similar Title"
	// ReasonWatchlist marks titles close to a watchlist centroid.
	ReasonWatchlist Reason = "Watchlist TF-IDF Match"
	// ReasonFallback marks the fixed fallback lists.
	ReasonFallback Reason = "Fallback Recommendation"
)

// Candidate is a recommended title with the reason it was picked.
// Score is zero until fusion assigns the reason's weight.
type Candidate struct {
	Title  string  `json:"title"`
	Reason Reason  `json:"reason"`
	Score  float64 `json:"score"`
}

// Signal generates ranked candidates for a source title.
//
// Implementations must be pure with respect to the index, must never return
// a row whose title equals the source title, and must return nil when the
// source is not in the index.
type Signal interface {
	// Reason returns the tag attached to every candidate.
	Reason() Reason

	// Candidates returns at most topN candidates for source, best first.
	Candidates(idx *index.Index, source string, topN int) []Candidate
}

// Outcome tells how a result was produced.
type Outcome int

const (
	// OutcomeSuccess is a computed result, possibly empty.
	OutcomeSuccess Outcome = iota
	// OutcomeFallbackInsufficient is the fixed list returned when fewer
	// than two watchlist titles resolve.
	OutcomeFallbackInsufficient
	// OutcomeFallbackFailure is the fixed list returned when ranking fails.
	OutcomeFallbackFailure
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFallbackInsufficient:
		return "fallback_insufficient"
	case OutcomeFallbackFailure:
		return "fallback_failure"
	default:
		return "unknown"
	}
}

// IsFallback reports whether the outcome is one of the fixed lists.
func (o Outcome) IsFallback() bool {
	return o == OutcomeFallbackInsufficient || o == OutcomeFallbackFailure
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*o = OutcomeSuccess
	case "fallback_insufficient":
		*o = OutcomeFallbackInsufficient
	case "fallback_failure":
		*o = OutcomeFallbackFailure
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// Result is an ordered recommendation list. Items never repeat a title and
// never contain the source title(s).
type Result struct {
	// Items is the ranked list.
	Items []Candidate `json:"items"`

	// Outcome tells whether Items was computed or is a fallback list.
	Outcome Outcome `json:"outcome"`

	// Resolved holds the corpus titles matched by a watchlist query.
	Resolved []string `json:"resolved,omitempty"`

	// Unresolved holds the watchlist inputs that matched nothing.
	Unresolved []string `json:"unresolved,omitempty"`

	// Generation identifies the index the result was computed against.
	Generation uint64 `json:"generation"`

	// Cached is true when the result was served from the response cache.
	Cached bool `json:"cached"`

	// Err records why a fallback-failure list was returned.
	Err error `json:"-"`
}

// Titles returns the item titles in order.
func (r Result) Titles() []string {
	titles := make([]string, len(r.Items))
	for i, c := range r.Items {
		titles[i] = c.Title
	}
	return titles
}

func (r Result) clone() Result {
	r.Items = slices.Clone(r.Items)
	r.Resolved = slices.Clone(r.Resolved)
	r.Unresolved = slices.Clone(r.Unresolved)
	return r
}

var (
	fallbackInsufficientTitles = []string{"The Shawshank Redemption", "The Godfather", "Inception", "Interstellar"}
	fallbackFailureTitles      = []string{"The Dark Knight", "Fight Club", "Pulp Fiction", "Forrest Gump"}
)

// FallbackInsufficient returns the list served when a watchlist resolves
// to fewer than two titles.
func FallbackInsufficient() Result {
	return fallback(OutcomeFallbackInsufficient, fallbackInsufficientTitles)
}

// FallbackFailure returns the list served when watchlist ranking fails.
func FallbackFailure(err error) Result {
	r := fallback(OutcomeFallbackFailure, fallbackFailureTitles)
	r.Err = err
	return r
}

func fallback(outcome Outcome, titles []string) Result {
	items := make([]Candidate, len(titles))
	for i, t := range titles {
		items[i] = Candidate{Title: t, Reason: ReasonFallback, Score: 1.0}
	}
	return Result{Items: items, Outcome: outcome}
}

// Stats is a point-in-time view of the engine.
type Stats struct {
	Ready            bool      `json:"ready"`
	Generation       uint64    `json:"generation"`
	Records          int       `json:"records"`
	Vocabulary       int       `json:"vocabulary"`
	BuiltAt          time.Time `json:"built_at,omitempty"`
	SingleQueries    int64     `json:"single_queries"`
	WatchlistQueries int64     `json:"watchlist_queries"`
	Fallbacks        int64     `json:"fallbacks"`
	CacheHits        int64     `json:"cache_hits"`
	CacheMisses      int64     `json:"cache_misses"`
	CacheSize        int       `json:"cache_size"`
}
