// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package textsim

import "sort"

// Matcher scores the similarity of two strings in [0, 1].
type Matcher interface {
	Ratio(a, b string) float64
}

// RatcliffObershelp is the default Matcher.
type RatcliffObershelp struct{}

// Ratio implements Matcher.
func (RatcliffObershelp) Ratio(a, b string) float64 {
	return NewSequenceMatcher(a, b).Ratio()
}

// Default is the Matcher used when none is configured.
var Default Matcher = RatcliffObershelp{}

// Scored is a candidate with its similarity to the query word.
type Scored struct {
	Value string
	Score float64
}

// CloseMatches returns up to n candidates whose ratio against word is at
// least cutoff, best first. Candidates are screened with RealQuickRatio and
// QuickRatio before the full ratio is computed. Equal scores are ordered by
// the lexically larger candidate first.
//
// n must be > 0 and cutoff must lie in [0, 1]; otherwise nil is returned.
func CloseMatches(word string, candidates []string, n int, cutoff float64) []Scored {
	if n <= 0 || cutoff < 0 || cutoff > 1 {
		return nil
	}

	sm := &SequenceMatcher{}
	sm.SetSeq2(word)

	var result []Scored
	for _, c := range candidates {
		sm.SetSeq1(c)
		if sm.RealQuickRatio() < cutoff || sm.QuickRatio() < cutoff {
			continue
		}
		if r := sm.Ratio(); r >= cutoff {
			result = append(result, Scored{Value: c, Score: r})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Value > result[j].Value
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}

// BestMatch returns the single best candidate at or above cutoff.
func BestMatch(word string, candidates []string, cutoff float64) (string, bool) {
	matches := CloseMatches(word, candidates, 1, cutoff)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Value, true
}

// Best is BestMatch for an arbitrary Matcher. The default matcher takes the
// screened CloseMatches path; any other matcher is scanned in full and ties
// keep the lexically larger candidate, as CloseMatches does.
func Best(m Matcher, word string, candidates []string, cutoff float64) (string, bool) {
	if m == nil {
		m = Default
	}
	if _, ok := m.(RatcliffObershelp); ok {
		return BestMatch(word, candidates, cutoff)
	}
	if cutoff < 0 || cutoff > 1 {
		return "", false
	}

	best := Scored{Score: -1}
	for _, c := range candidates {
		r := m.Ratio(c, word)
		if r < cutoff {
			continue
		}
		if r > best.Score || (r == best.Score && c > best.Value) {
			best = Scored{Value: c, Score: r}
		}
	}
	if best.Score < 0 {
		return "", false
	}
	return best.Value, true
}
