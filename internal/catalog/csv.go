// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Column names recognized in a catalog CSV header. Aliases map to the
// canonical name.
const (
	colTitle       = "title"
	colGenres      = "genres"
	colDirectors   = "directors"
	colWriters     = "writers"
	colCast        = "cast"
	colTags        = "tags"
	colOverview    = "overview"
	colTagline     = "tagline"
	colReleaseDate = "release_date"
	colRuntime     = "runtime"
	colPopularity  = "popularity"
	colVoteAverage = "vote_average"
	colVoteCount   = "vote_count"
)

var columnAliases = map[string]string{
	"genre":    colGenres,
	"director": colDirectors,
	"writer":   colWriters,
	"profile":  colTags,
}

// ErrNoTitleColumn is returned when the header lacks a title column.
var ErrNoTitleColumn = errors.New("catalog CSV has no title column")

// ParseCSV reads a header-driven movie CSV. Unknown columns are ignored and
// rows without a title are skipped. Numeric fields that fail to parse are
// left at zero.
func ParseCSV(r io.Reader) ([]Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTitleColumn
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	if _, ok := cols[colTitle]; !ok {
		return nil, ErrNoTitleColumn
	}

	var movies []Movie
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		title := field(colTitle)
		if title == "" {
			continue
		}

		genresRaw := field(colGenres)
		movies = append(movies, Movie{
			Title:       title,
			Genres:      splitGenres(genresRaw),
			GenresRaw:   genresRaw,
			Directors:   field(colDirectors),
			Writers:     field(colWriters),
			Cast:        ParseCast(field(colCast)),
			Tags:        field(colTags),
			Overview:    field(colOverview),
			Tagline:     field(colTagline),
			ReleaseDate: field(colReleaseDate),
			Runtime:     int(parseFloat(field(colRuntime))),
			Popularity:  parseFloat(field(colPopularity)),
			VoteAverage: parseFloat(field(colVoteAverage)),
			VoteCount:   int(parseFloat(field(colVoteCount))),
		})
	}
	return movies, nil
}

// ParseCast reads a cast field that is either a JSON array of names or a
// comma separated list.
func ParseCast(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var names []string
		if err := json.Unmarshal([]byte(s), &names); err == nil {
			return compact(names)
		}
	}
	return compact(strings.Split(s, ","))
}

// splitGenres accepts both "Action|Drama" and "Action, Drama".
func splitGenres(s string) []string {
	if s == "" {
		return nil
	}
	sep := ","
	if strings.Contains(s, "|") {
		sep = "|"
	}
	return compact(strings.Split(s, sep))
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
