// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package index

import (
	"math"
	"sort"
)

// SparseVector holds the non-zero weights of a row, ordered by term index.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero entries.
func (v SparseVector) IsZero() bool {
	return len(v.Indices) == 0
}

// Dot returns the dot product of two vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean length.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of two vectors, or 0 when either is zero.
func (v SparseVector) Cosine(o SparseVector) float64 {
	nv, no := v.Norm(), o.Norm()
	if nv == 0 || no == 0 {
		return 0
	}
	return v.Dot(o) / (nv * no)
}

// fromMap builds a vector from term weights, dropping zeros.
func fromMap(weights map[int]float64) SparseVector {
	idx := make([]int, 0, len(weights))
	for t, w := range weights {
		if w != 0 {
			idx = append(idx, t)
		}
	}
	sort.Ints(idx)

	vals := make([]float64, len(idx))
	for i, t := range idx {
		vals[i] = weights[t]
	}
	return SparseVector{Indices: idx, Values: vals}
}

// Mean returns the element-wise arithmetic mean of vs. Zero vectors count
// towards the denominator but contribute nothing to the sum.
func Mean(vs []SparseVector) SparseVector {
	if len(vs) == 0 {
		return SparseVector{}
	}
	sum := make(map[int]float64)
	for _, v := range vs {
		for i, t := range v.Indices {
			sum[t] += v.Values[i]
		}
	}
	n := float64(len(vs))
	for t := range sum {
		sum[t] /= n
	}
	return fromMap(sum)
}
