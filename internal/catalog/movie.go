// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"slices"
	"strings"

	"github.com/tomtom215/marquee/internal/recommend/index"
)

// Movie is one catalog entry.
type Movie struct {
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	GenresRaw   string   `json:"genres_raw,omitempty"`
	Directors   string   `json:"directors,omitempty"`
	Writers     string   `json:"writers,omitempty"`
	Cast        []string `json:"cast"`
	Tags        string   `json:"tags,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	Tagline     string   `json:"tagline,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Runtime     int      `json:"runtime,omitempty"`
	Popularity  float64  `json:"popularity"`
	VoteAverage float64  `json:"vote_average"`
	VoteCount   int      `json:"vote_count"`
}

// Key returns the case-insensitive identity of the movie.
//
//nolint:gocritic // hugeParam: Movie is passed by value for immutability
func (m Movie) Key() string {
	return index.NormalizeTitle(m.Title)
}

// HasGenre reports whether the movie is tagged with genre, ignoring case.
//
//nolint:gocritic // hugeParam: Movie is passed by value for immutability
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// Profile returns the text that describes the movie to the TF-IDF index:
// the tags column when present, otherwise a composition of the descriptive
// fields.
//
//nolint:gocritic // hugeParam: Movie is passed by value for immutability
func (m Movie) Profile() string {
	if strings.TrimSpace(m.Tags) != "" {
		return m.Tags
	}

	parts := make([]string, 0, 5+len(m.Cast))
	parts = append(parts, m.Overview)
	parts = append(parts, m.Genres...)
	parts = append(parts, m.Cast...)
	parts = append(parts, m.Directors, m.Writers)

	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}

// ToRecord converts the movie into the form the recommendation index reads.
//
//nolint:gocritic // hugeParam: Movie is passed by value for immutability
func (m Movie) ToRecord() index.Record {
	return index.Record{
		Title:     m.Title,
		Genres:    slices.Clone(m.Genres),
		GenresRaw: m.GenresRaw,
		Director:  m.Directors,
		Writer:    m.Writers,
		Cast:      slices.Clone(m.Cast),
		Profile:   m.Profile(),
	}
}

// Records converts movies into index records, preserving order.
func Records(movies []Movie) []index.Record {
	out := make([]index.Record, len(movies))
	for i := range movies {
		out[i] = movies[i].ToRecord()
	}
	return out
}
