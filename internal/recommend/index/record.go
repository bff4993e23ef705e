// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package index

import (
	"slices"
	"strings"
)

// Record is the part of a movie the recommender looks at.
type Record struct {
	// Title is the display title.
	Title string

	// Genres is the ordered genre list as it appears in the catalog.
	Genres []string

	// GenresRaw is the genre field as read, before splitting.
	GenresRaw string

	// Director is the director field, compared by exact equality.
	Director string

	// Writer is the writer field, compared by exact equality.
	Writer string

	// Cast is the ordered list of cast member names.
	Cast []string

	// Profile is the free text that is vectorized.
	Profile string
}

// Key returns the normalized title used for exact lookups.
func (r *Record) Key() string {
	return NormalizeTitle(r.Title)
}

// NormalizeTitle lowercases a title for exact, case-insensitive matching.
func NormalizeTitle(title string) string {
	return strings.ToLower(title)
}

// SameGenres reports whether both records carry the identical, non-empty
// genre field. The raw field is compared, so "Crime|Drama" and
// "Crime, Drama" differ.
func (r *Record) SameGenres(other *Record) bool {
	key := r.genreKey()
	return key != "" && key == other.genreKey()
}

// genreKey falls back to the joined list for records built without the raw field.
func (r *Record) genreKey() string {
	if r.GenresRaw != "" {
		return r.GenresRaw
	}
	return strings.Join(r.Genres, "|")
}

func (r *Record) clone() Record {
	c := *r
	c.Genres = slices.Clone(r.Genres)
	c.Cast = slices.Clone(r.Cast)
	return c
}
