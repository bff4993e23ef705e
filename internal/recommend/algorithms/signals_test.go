// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"reflect"
	"testing"

	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/index"
)

func testIndex() *index.Index {
	return index.Build([]index.Record{
		{
			Title: "Heat", Genres: []string{"Crime", "Drama"}, Director: "Michael Mann", Writer: "Michael Mann",
			Cast: []string{"Al Pacino", "Robert De Niro", "Val Kilmer"}, Profile: "heist crew detective los angeles",
		},
		{
			Title: "Collateral", Genres: []string{"Crime", "Thriller"}, Director: "Michael Mann", Writer: "Stuart Beattie",
			Cast: []string{"Tom Cruise", "Jamie Foxx"}, Profile: "hitman taxi los angeles night",
		},
		{
			Title: "Ronin", Genres: []string{"Crime", "Drama"}, Director: "John Frankenheimer", Writer: "J.D. Zeik",
			Cast: []string{"Robert De Niro", "Jean Reno"}, Profile: "heist crew mercenaries paris",
		},
		{
			Title: "The Insider", Genres: []string{"Drama"}, Director: "Michael Mann", Writer: "Michael Mann",
			Cast: []string{"Al Pacino", "Russell Crowe"}, Profile: "tobacco whistleblower journalist",
		},
		{
			Title: "Godfather", Genres: []string{"Crime", "Drama"}, Director: "Francis Ford Coppola", Writer: "Mario Puzo",
			Cast: []string{"Al Pacino", "Robert De Niro", "Marlon Brando"}, Profile: "mafia family crime",
		},
		{
			Title: "heat", Genres: []string{"Crime", "Drama"}, Director: "Michael Mann",
			Cast: []string{"Al Pacino"}, Profile: "a second row titled heat",
		},
		{
			Title: "Ronin", Genres: []string{"Crime", "Drama"}, Director: "John Frankenheimer",
			Cast: []string{"Jean Reno"}, Profile: "duplicate ronin row",
		},
	}, index.DefaultBuildConfig())
}

func titles(cs []recommend.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return out
}

func TestSignals_ReasonAndExclusion(t *testing.T) {
	idx := testIndex()

	for _, s := range Hybrid(nil) {
		t.Run(string(s.Reason()), func(t *testing.T) {
			got := s.Candidates(idx, "HEAT", 10)
			for _, c := range got {
				if index.NormalizeTitle(c.Title) == "heat" {
					t.Errorf("candidates contain source title %q", c.Title)
				}
				if c.Reason != s.Reason() {
					t.Errorf("candidate reason = %q, want %q", c.Reason, s.Reason())
				}
				if c.Score != 0 {
					t.Errorf("candidate score = %v, want 0 before fusion", c.Score)
				}
			}
			if unknown := s.Candidates(idx, "Casino", 10); unknown != nil {
				t.Errorf("unknown source returned %v, want nil", titles(unknown))
			}
			if none := s.Candidates(idx, "Heat", 0); none != nil {
				t.Errorf("topN 0 returned %v, want nil", titles(none))
			}
		})
	}
}

func TestHybrid_Order(t *testing.T) {
	want := []recommend.Reason{
		recommend.ReasonCast,
		recommend.ReasonDirector,
		recommend.ReasonGenre,
		recommend.ReasonTFIDF,
		recommend.ReasonWriter,
		recommend.ReasonTitle,
	}
	signals := Hybrid(nil)
	if len(signals) != len(want) {
		t.Fatalf("len(Hybrid()) = %d, want %d", len(signals), len(want))
	}
	for i, s := range signals {
		if s.Reason() != want[i] {
			t.Errorf("Hybrid()[%d] = %q, want %q", i, s.Reason(), want[i])
		}
	}
}

func TestCastOverlap(t *testing.T) {
	idx := testIndex()
	s := NewCastOverlap()

	tests := []struct {
		name string
		topN int
		want []string
	}{
		// Godfather shares 2, Ronin and The Insider share 1, zero overlaps keep corpus order
		{"ranked by overlap then corpus order", 10, []string{"Godfather", "Ronin", "The Insider", "Collateral", "Ronin"}},
		{"truncated", 2, []string{"Godfather", "Ronin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(s.Candidates(idx, "Heat", tt.topN))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Candidates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameDirector(t *testing.T) {
	idx := testIndex()

	got := titles(NewSameDirector().Candidates(idx, "Heat", 10))
	want := []string{"Collateral", "The Insider"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}

	got = titles(NewSameDirector().Candidates(idx, "Heat", 1))
	if !reflect.DeepEqual(got, []string{"Collateral"}) {
		t.Errorf("Candidates(topN=1) = %v, want [Collateral]", got)
	}
}

func TestSameWriter(t *testing.T) {
	idx := testIndex()

	got := titles(NewSameWriter().Candidates(idx, "Heat", 10))
	if !reflect.DeepEqual(got, []string{"The Insider"}) {
		t.Errorf("Candidates() = %v, want [The Insider]", got)
	}

	// nobody else shares Collateral's writer
	if got := NewSameWriter().Candidates(idx, "Collateral", 10); got != nil {
		t.Errorf("Candidates(Collateral) = %v, want nil", titles(got))
	}
}

func TestSameGenre_ExactListOnly(t *testing.T) {
	idx := testIndex()

	got := titles(NewSameGenre().Candidates(idx, "Heat", 10))
	want := []string{"Ronin", "Godfather"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

func TestTFIDF(t *testing.T) {
	idx := testIndex()

	got := titles(NewTFIDF().Candidates(idx, "Heat", 1))
	if !reflect.DeepEqual(got, []string{"Ronin"}) {
		t.Errorf("Candidates() = %v, want [Ronin]", got)
	}

	all := NewTFIDF().Candidates(idx, "Heat", 100)
	if len(all) != idx.Len()-2 {
		t.Errorf("len(Candidates(100)) = %d, want %d", len(all), idx.Len()-2)
	}
}

func TestFuzzyTitle(t *testing.T) {
	idx := testIndex()

	got := NewFuzzyTitle(nil).Candidates(idx, "Ronin", 5)
	if len(got) != 5 {
		t.Errorf("len(Candidates()) = %d, want 5", len(got))
	}
	for _, c := range got {
		if c.Title == "Ronin" {
			t.Errorf("candidates contain source title %q", c.Title)
		}
	}
}

func TestFuzzyTitle_KeepsRepeatedTitles(t *testing.T) {
	idx := testIndex()
	m := constMatcher{"ronin": 0.9, "godfather": 0.5}

	// both Ronin rows outrank Godfather, same as cast overlap
	got := titles(NewFuzzyTitle(m).Candidates(idx, "Heat", 3))
	want := []string{"Ronin", "Ronin", "Godfather"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

type constMatcher map[string]float64

func (m constMatcher) Ratio(a, b string) float64 { return m[b] }

func TestFuzzyTitle_UsesMatcher(t *testing.T) {
	idx := testIndex()
	m := constMatcher{"the insider": 0.9, "godfather": 0.8}

	got := titles(NewFuzzyTitle(m).Candidates(idx, "Heat", 2))
	if !reflect.DeepEqual(got, []string{"The Insider", "Godfather"}) {
		t.Errorf("Candidates() = %v, want [The Insider Godfather]", got)
	}
}
