// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tomtom215/marquee/internal/recommend/index"
)

// Catalog is an immutable, ordered set of movies with lookup helpers.
type Catalog struct {
	movies   []Movie
	byKey    map[string]int
	source   string
	loadedAt time.Time
}

// New creates a catalog from movies. The first movie for a title wins
// lookups; later duplicates stay in the list.
func New(movies []Movie, source string) *Catalog {
	c := &Catalog{
		movies:   slices.Clone(movies),
		byKey:    make(map[string]int, len(movies)),
		source:   source,
		loadedAt: time.Now().UTC(),
	}
	for i := range c.movies {
		key := c.movies[i].Key()
		if _, exists := c.byKey[key]; !exists {
			c.byKey[key] = i
		}
	}
	return c
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Movies returns a copy of the movie list.
func (c *Catalog) Movies() []Movie {
	return slices.Clone(c.movies)
}

// Source names where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// LoadedAt returns when the catalog was created.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// Records converts the catalog for the recommendation index.
func (c *Catalog) Records() []index.Record {
	return Records(c.movies)
}

// Get looks a movie up by exact title, ignoring case and surrounding space.
func (c *Catalog) Get(title string) (Movie, bool) {
	i, ok := c.byKey[index.NormalizeTitle(strings.TrimSpace(title))]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// Search returns movies whose title contains query, ignoring case, in
// catalog order. A blank query matches nothing. limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Movie
	for i := range c.movies {
		if strings.Contains(c.movies[i].Key(), q) {
			out = append(out, c.movies[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// TopByPopularity returns the n most popular movies.
func (c *Catalog) TopByPopularity(n int) []Movie {
	return top(c.movies, n, func(m *Movie) float64 { return m.Popularity })
}

// TopByVoteAverage returns the n highest rated movies by raw vote average.
func (c *Catalog) TopByVoteAverage(n int) []Movie {
	return top(c.movies, n, func(m *Movie) float64 { return m.VoteAverage })
}

// TopByGenre returns, for each requested genre, the n highest rated movies
// carrying it. Genres with no movies map to an empty list.
func (c *Catalog) TopByGenre(genres []string, n int) map[string][]Movie {
	out := make(map[string][]Movie, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		var matching []Movie
		for i := range c.movies {
			if c.movies[i].HasGenre(g) {
				matching = append(matching, c.movies[i])
			}
		}
		out[g] = top(matching, n, func(m *Movie) float64 { return m.VoteAverage })
	}
	return out
}

// Genres returns the distinct genres in first-seen order.
func (c *Catalog) Genres() []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range c.movies {
		for _, g := range c.movies[i].Genres {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				out = append(out, g)
			}
		}
	}
	return out
}

// top sorts a copy of movies by score descending, catalog order breaking
// ties, and keeps n.
func top(movies []Movie, n int, score func(*Movie) float64) []Movie {
	if n <= 0 {
		return []Movie{}
	}
	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, func(a, b Movie) int {
		sa, sb := score(&a), score(&b)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		return []Movie{}
	}
	return sorted
}

// Library holds the currently published catalog. Readers never block.
type Library struct {
	current atomic.Pointer[Catalog]
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{}
}

// Publish makes c the current catalog.
func (l *Library) Publish(c *Catalog) {
	l.current.Store(c)
}

// Current returns the published catalog, or nil before the first load.
func (l *Library) Current() *Catalog {
	return l.current.Load()
}
