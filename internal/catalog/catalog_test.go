// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"slices"
	"testing"
)

func testMovies() []Movie {
	return []Movie{
		{Title: "The Dark Knight", Genres: []string{"Action", "Crime"}, Popularity: 90, VoteAverage: 8.5},
		{Title: "Dark City", Genres: []string{"Sci-Fi"}, Popularity: 10, VoteAverage: 7.6},
		{Title: "Inception", Genres: []string{"Action", "Sci-Fi"}, Popularity: 95, VoteAverage: 8.4},
		{Title: "Heat", Genres: []string{"Action", "Crime"}, Popularity: 40, VoteAverage: 8.5},
		{Title: "the dark knight", Genres: []string{"Drama"}, Popularity: 1, VoteAverage: 1},
	}
}

func titles(movies []Movie) []string {
	out := make([]string, len(movies))
	for i := range movies {
		out[i] = movies[i].Title
	}
	return out
}

func TestCatalog_Get(t *testing.T) {
	c := New(testMovies(), "test")

	tests := []struct {
		name  string
		title string
		want  string
		found bool
	}{
		{"exact", "Inception", "Inception", true},
		{"case and space", "  INCEPTION ", "Inception", true},
		{"first duplicate wins", "THE DARK KNIGHT", "The Dark Knight", true},
		{"substring is not a match", "Dark", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := c.Get(tt.title)
			if ok != tt.found || m.Title != tt.want {
				t.Errorf("Get(%q) = (%q, %v), want (%q, %v)", tt.title, m.Title, ok, tt.want, tt.found)
			}
		})
	}
}

func TestCatalog_Search(t *testing.T) {
	c := New(testMovies(), "test")

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"substring in catalog order", "dark", 0, []string{"The Dark Knight", "Dark City", "the dark knight"}},
		{"limit", "dark", 2, []string{"The Dark Knight", "Dark City"}},
		{"no match", "zzz", 0, []string{}},
		{"blank", "   ", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(c.Search(tt.query, tt.limit))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestCatalog_Top(t *testing.T) {
	c := New(testMovies(), "test")

	if got := titles(c.TopByPopularity(2)); !slices.Equal(got, []string{"Inception", "The Dark Knight"}) {
		t.Errorf("TopByPopularity(2) = %v", got)
	}
	// ties keep catalog order
	if got := titles(c.TopByVoteAverage(3)); !slices.Equal(got, []string{"The Dark Knight", "Heat", "Inception"}) {
		t.Errorf("TopByVoteAverage(3) = %v", got)
	}
	if got := c.TopByVoteAverage(0); len(got) != 0 {
		t.Errorf("TopByVoteAverage(0) = %v, want empty", got)
	}
	if got := c.TopByPopularity(100); len(got) != 5 {
		t.Errorf("TopByPopularity(100) returned %d movies, want 5", len(got))
	}
}

func TestCatalog_TopByGenre(t *testing.T) {
	c := New(testMovies(), "test")

	got := c.TopByGenre([]string{"crime", "Sci-Fi", "Western", " "}, 10)
	if len(got) != 3 {
		t.Fatalf("TopByGenre() returned %d genres, want 3", len(got))
	}
	if g := titles(got["crime"]); !slices.Equal(g, []string{"The Dark Knight", "Heat"}) {
		t.Errorf("crime = %v", g)
	}
	if g := titles(got["Sci-Fi"]); !slices.Equal(g, []string{"Inception", "Dark City"}) {
		t.Errorf("Sci-Fi = %v", g)
	}
	if g := got["Western"]; g == nil || len(g) != 0 {
		t.Errorf("Western = %v, want empty list", g)
	}
}

func TestCatalog_Genres(t *testing.T) {
	c := New(testMovies(), "test")
	want := []string{"Action", "Crime", "Sci-Fi", "Drama"}
	if got := c.Genres(); !slices.Equal(got, want) {
		t.Errorf("Genres() = %v, want %v", got, want)
	}
}

func TestCatalog_Records(t *testing.T) {
	c := New(testMovies(), "test")
	recs := c.Records()
	if len(recs) != c.Len() {
		t.Fatalf("len(Records()) = %d, want %d", len(recs), c.Len())
	}
	for i, r := range recs {
		if r.Title != testMovies()[i].Title {
			t.Errorf("Records()[%d] = %q, order not preserved", i, r.Title)
		}
	}
}

func TestLibrary(t *testing.T) {
	l := NewLibrary()
	if l.Current() != nil {
		t.Fatal("new library should be empty")
	}
	c := New(testMovies(), "test")
	l.Publish(c)
	if l.Current() != c {
		t.Error("Current() did not return the published catalog")
	}
}
