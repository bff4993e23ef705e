// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package index

import (
	"math"
	"reflect"
	"testing"
)

func TestSparseVector_Cosine(t *testing.T) {
	t.Parallel()

	a := SparseVector{Indices: []int{0, 2}, Values: []float64{1, 1}}
	b := SparseVector{Indices: []int{2, 5}, Values: []float64{1, 1}}

	if got := a.Cosine(a); math.Abs(got-1) > 1e-9 {
		t.Errorf("a.Cosine(a) = %v, want 1", got)
	}
	if got := a.Cosine(b); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("a.Cosine(b) = %v, want 0.5", got)
	}
	if got := a.Cosine(SparseVector{}); got != 0 {
		t.Errorf("a.Cosine(zero) = %v, want 0", got)
	}
}

func TestMean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []SparseVector
		want SparseVector
	}{
		{
			name: "empty input",
			in:   nil,
			want: SparseVector{},
		},
		{
			name: "two vectors",
			in: []SparseVector{
				{Indices: []int{0, 1}, Values: []float64{2, 4}},
				{Indices: []int{1, 3}, Values: []float64{2, 6}},
			},
			want: SparseVector{Indices: []int{0, 1, 3}, Values: []float64{1, 3, 3}},
		},
		{
			name: "zero vector counts towards denominator",
			in: []SparseVector{
				{Indices: []int{4}, Values: []float64{2}},
				{},
			},
			want: SparseVector{Indices: []int{4}, Values: []float64{1}},
		},
		{
			name: "all zero",
			in:   []SparseVector{{}, {}},
			want: SparseVector{Indices: []int{}, Values: []float64{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.in)
			if got.Len() != tt.want.Len() {
				t.Fatalf("Mean() = %+v, want %+v", got, tt.want)
			}
			if got.Len() > 0 && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Mean() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("Sci-Fi, a Space_Opera! x 2001")
	want := []string{"sci", "fi", "space_opera", "2001"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
