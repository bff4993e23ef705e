// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package index

import (
	"math"
	"sort"
	"time"
)

// DefaultMaxFeatures is the vocabulary cap applied when BuildConfig leaves it unset.
const DefaultMaxFeatures = 5000

// BuildConfig controls term weighting.
type BuildConfig struct {
	// MaxFeatures caps the vocabulary size.
	// Default: 5000
	MaxFeatures int

	// KeepStopWords disables English stop word removal.
	KeepStopWords bool
}

// DefaultBuildConfig returns the production term weighting settings.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{MaxFeatures: DefaultMaxFeatures}
}

// Index is an immutable corpus snapshot. See the package documentation.
type Index struct {
	records []Record
	keys    []string
	rows    []SparseVector
	vocab   []string
	lookup  map[string]int
	builtAt time.Time
}

// Build vectorizes the profile text of every record. It never fails: a record
// without usable terms gets a zero row. The caller's slice is copied.
//
//nolint:gocritic // hugeParam: cfg passed by value for immutability
func Build(records []Record, cfg BuildConfig) *Index {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = DefaultMaxFeatures
	}

	idx := &Index{
		records: make([]Record, len(records)),
		keys:    make([]string, len(records)),
		rows:    make([]SparseVector, len(records)),
		lookup:  make(map[string]int, len(records)),
		builtAt: time.Now(),
	}

	docs := make([]map[string]int, len(records))
	totals := make(map[string]int)
	for i := range records {
		idx.records[i] = records[i].clone()
		key := records[i].Key()
		idx.keys[i] = key
		if _, seen := idx.lookup[key]; !seen {
			idx.lookup[key] = i
		}

		counts := make(map[string]int)
		for _, tok := range Tokenize(records[i].Profile) {
			if !cfg.KeepStopWords && IsStopWord(tok) {
				continue
			}
			counts[tok]++
			totals[tok]++
		}
		docs[i] = counts
	}

	idx.vocab = selectVocabulary(totals, cfg.MaxFeatures)
	termIndex := make(map[string]int, len(idx.vocab))
	for i, term := range idx.vocab {
		termIndex[term] = i
	}

	df := make([]int, len(idx.vocab))
	for _, counts := range docs {
		for term := range counts {
			if t, ok := termIndex[term]; ok {
				df[t]++
			}
		}
	}

	n := float64(len(records))
	idf := make([]float64, len(df))
	for t, d := range df {
		idf[t] = math.Log((1+n)/(1+float64(d))) + 1
	}

	for i, counts := range docs {
		weights := make(map[int]float64, len(counts))
		var norm float64
		for term, c := range counts {
			t, ok := termIndex[term]
			if !ok {
				continue
			}
			w := float64(c) * idf[t]
			weights[t] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range weights {
				weights[t] /= norm
			}
		}
		idx.rows[i] = fromMap(weights)
	}

	return idx
}

// selectVocabulary keeps the max most frequent terms, ties in alphabetical
// order, and returns them sorted alphabetically.
func selectVocabulary(totals map[string]int, maxFeatures int) []string {
	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	if len(terms) > maxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return totals[terms[i]] > totals[terms[j]]
		})
		terms = terms[:maxFeatures]
		sort.Strings(terms)
	}
	return terms
}

// Len returns the number of rows.
func (x *Index) Len() int {
	return len(x.records)
}

// Record returns the record at row i. The returned value must not be modified.
func (x *Index) Record(i int) *Record {
	return &x.records[i]
}

// Key returns the normalized title of row i.
func (x *Index) Key(i int) string {
	return x.keys[i]
}

// Keys returns the normalized titles in row order.
func (x *Index) Keys() []string {
	out := make([]string, len(x.keys))
	copy(out, x.keys)
	return out
}

// Row returns the TF-IDF vector of row i.
func (x *Index) Row(i int) SparseVector {
	return x.rows[i]
}

// Lookup returns the first row whose title equals title, ignoring case.
func (x *Index) Lookup(title string) (int, bool) {
	i, ok := x.lookup[NormalizeTitle(title)]
	return i, ok
}

// VocabularySize returns the number of weighted terms.
func (x *Index) VocabularySize() int {
	return len(x.vocab)
}

// BuiltAt returns when the index was built.
func (x *Index) BuiltAt() time.Time {
	return x.builtAt
}

// Similarities returns the cosine similarity between v and every row, in row order.
func (x *Index) Similarities(v SparseVector) []float64 {
	sims := make([]float64, len(x.rows))
	norm := v.Norm()
	if norm == 0 {
		return sims
	}
	for i, row := range x.rows {
		rn := row.Norm()
		if rn == 0 {
			continue
		}
		sims[i] = v.Dot(row) / (norm * rn)
	}
	return sims
}
