// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package textsim

import "sort"

// autojunkMinLen is the length of b at which popular elements start being
// ignored when indexing b.
const autojunkMinLen = 200

// Match is a matching block: a[A:A+Size] == b[B:B+Size].
type Match struct {
	A, B, Size int
}

// SequenceMatcher compares two rune sequences.
// b is indexed once so a matcher can be reused against many a values.
type SequenceMatcher struct {
	a, b      []rune
	b2j       map[rune][]int
	fullBCnt  map[rune]int
	matchings []Match
}

// NewSequenceMatcher returns a matcher comparing a against b.
func NewSequenceMatcher(a, b string) *SequenceMatcher {
	m := &SequenceMatcher{}
	m.SetSeq2(b)
	m.SetSeq1(a)
	return m
}

// SetSeq1 replaces the first sequence.
func (m *SequenceMatcher) SetSeq1(a string) {
	m.a = []rune(a)
	m.matchings = nil
}

// SetSeq2 replaces the second sequence and rebuilds its index.
func (m *SequenceMatcher) SetSeq2(b string) {
	m.b = []rune(b)
	m.matchings = nil
	m.fullBCnt = nil
	m.chainB()
}

func (m *SequenceMatcher) chainB() {
	b2j := make(map[rune][]int)
	for i, r := range m.b {
		b2j[r] = append(b2j[r], i)
	}

	// Popular elements in long sequences are dropped from the index.
	if n := len(m.b); n >= autojunkMinLen {
		ntest := n/100 + 1
		for r, idxs := range b2j {
			if len(idxs) > ntest {
				delete(b2j, r)
			}
		}
	}
	m.b2j = b2j
}

// findLongestMatch returns the longest matching block in a[alo:ahi] and b[blo:bhi].
// Among equal-length blocks it returns the one that starts earliest in a, and
// of those the one that starts earliest in b.
func (m *SequenceMatcher) findLongestMatch(alo, ahi, blo, bhi int) Match {
	besti, bestj, bestsize := alo, blo, 0

	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	// Extend over elements that were left out of the index.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}

	return Match{A: besti, B: bestj, Size: bestsize}
}

// MatchingBlocks returns the non-overlapping matching blocks ordered by position,
// with adjacent blocks collapsed. The final element is always the sentinel
// {len(a), len(b), 0}.
func (m *SequenceMatcher) MatchingBlocks() []Match {
	if m.matchings != nil {
		return m.matchings
	}

	la, lb := len(m.a), len(m.b)
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, la, 0, lb}}
	var blocks []Match

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		x := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.Size == 0 {
			continue
		}
		blocks = append(blocks, x)
		if s.alo < x.A && s.blo < x.B {
			queue = append(queue, span{s.alo, x.A, s.blo, x.B})
		}
		if x.A+x.Size < s.ahi && x.B+x.Size < s.bhi {
			queue = append(queue, span{x.A + x.Size, s.ahi, x.B + x.Size, s.bhi})
		}
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].A != blocks[j].A {
			return blocks[i].A < blocks[j].A
		}
		return blocks[i].B < blocks[j].B
	})

	collapsed := make([]Match, 0, len(blocks)+1)
	var cur Match
	for _, blk := range blocks {
		if cur.Size > 0 && cur.A+cur.Size == blk.A && cur.B+cur.Size == blk.B {
			cur.Size += blk.Size
			continue
		}
		if cur.Size > 0 {
			collapsed = append(collapsed, cur)
		}
		cur = blk
	}
	if cur.Size > 0 {
		collapsed = append(collapsed, cur)
	}
	collapsed = append(collapsed, Match{A: la, B: lb, Size: 0})

	m.matchings = collapsed
	return collapsed
}

// Ratio returns 2*M/T in [0, 1].
func (m *SequenceMatcher) Ratio() float64 {
	matches := 0
	for _, blk := range m.MatchingBlocks() {
		matches += blk.Size
	}
	return calculateRatio(matches, len(m.a)+len(m.b))
}

// QuickRatio returns an upper bound on Ratio based on character multisets.
func (m *SequenceMatcher) QuickRatio() float64 {
	if m.fullBCnt == nil {
		m.fullBCnt = make(map[rune]int, len(m.b))
		for _, r := range m.b {
			m.fullBCnt[r]++
		}
	}

	avail := make(map[rune]int)
	matches := 0
	for _, r := range m.a {
		n, seen := avail[r]
		if !seen {
			n = m.fullBCnt[r]
		}
		avail[r] = n - 1
		if n > 0 {
			matches++
		}
	}
	return calculateRatio(matches, len(m.a)+len(m.b))
}

// RealQuickRatio returns a very cheap upper bound on Ratio based on lengths only.
func (m *SequenceMatcher) RealQuickRatio() float64 {
	la, lb := len(m.a), len(m.b)
	return calculateRatio(min(la, lb), la+lb)
}

func calculateRatio(matches, length int) float64 {
	if length == 0 {
		return 1.0
	}
	return 2.0 * float64(matches) / float64(length)
}
