// Copyright 2024 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bitset is the word-granular bitset shared by the visibility
// filter and the mark subsystem: both need O(n/64) full scans, O(1)
// membership, and a prefix-popcount array for O(log n) rank/select so the
// drawer can jump to "the k-th visible row" without a linear walk. The
// mark iterator's NextSet/PrevSet scan index by index.
package bitset

import "math/bits"

const wordBits = 64

// Set is a fixed-size bitset over [0, n) plus a prefix-popcount array built
// by Rebuild, used for rank/select queries.
type Set struct {
	words  []uint64
	prefix []uint32 // prefix[i] = popcount of words[0:i]; len == len(words)+1
	n      int
}

// New allocates a bitset over n indices, all initially clear.
func New(n int) *Set {
	return &Set{
		words:  make([]uint64, (n+wordBits-1)/wordBits),
		prefix: make([]uint32, (n+wordBits-1)/wordBits+1),
		n:      n,
	}
}

// Reset clears the bitset and resizes it to n indices.
func (s *Set) Reset(n int) {
	nw := (n + wordBits - 1) / wordBits
	if cap(s.words) >= nw {
		s.words = s.words[:nw]
		for i := range s.words {
			s.words[i] = 0
		}
	} else {
		s.words = make([]uint64, nw)
	}
	if cap(s.prefix) >= nw+1 {
		s.prefix = s.prefix[:nw+1]
	} else {
		s.prefix = make([]uint32, nw+1)
	}
	for i := range s.prefix {
		s.prefix[i] = 0
	}
	s.n = n
}

// Len reports the number of indices the bitset covers.
func (s *Set) Len() int { return s.n }

// Set sets or clears bit i. Callers must call Rebuild before relying on
// PopCount/Select/prefix-dependent queries.
func (s *Set) Set(i int, v bool) {
	w, b := i/wordBits, uint(i%wordBits)
	if v {
		s.words[w] |= 1 << b
	} else {
		s.words[w] &^= 1 << b
	}
}

// Get reports whether bit i is set.
func (s *Set) Get(i int) bool {
	w, b := i/wordBits, uint(i%wordBits)
	return s.words[w]&(1<<b) != 0
}

// Rebuild recomputes the prefix-popcount array after a batch of Set calls.
func (s *Set) Rebuild() {
	sum := uint32(0)
	for i, w := range s.words {
		s.prefix[i] = sum
		sum += uint32(bits.OnesCount64(w))
	}
	s.prefix[len(s.words)] = sum
}

// PopCount returns the total number of set bits (valid after Rebuild).
func (s *Set) PopCount() int {
	if len(s.prefix) == 0 {
		return 0
	}
	return int(s.prefix[len(s.prefix)-1])
}

// CountBefore returns the number of set bits in [0, i) (valid after
// Rebuild) — the drawer uses this to map an absolute index to its row
// among currently visible entries.
func (s *Set) CountBefore(i int) int {
	w := i / wordBits
	count := int(s.prefix[w])
	rem := uint(i % wordBits)
	if rem > 0 {
		mask := uint64(1)<<rem - 1
		count += bits.OnesCount64(s.words[w] & mask)
	}
	return count
}

// Select returns the index of the k-th set bit (0-indexed), or false if
// the bitset has fewer than k+1 set bits.
func (s *Set) Select(k int) (int, bool) {
	if k < 0 || k >= s.PopCount() {
		return 0, false
	}
	// Binary search the prefix array for the word containing bit k.
	lo, hi := 0, len(s.words)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if int(s.prefix[mid]) <= k {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	w := s.words[lo]
	remaining := k - int(s.prefix[lo])
	for bit := 0; bit < wordBits; bit++ {
		if w&(1<<uint(bit)) != 0 {
			if remaining == 0 {
				return lo*wordBits + bit, true
			}
			remaining--
		}
	}
	return 0, false
}

// NextSet returns the smallest set index strictly greater than from, or
// false if none exists.
func (s *Set) NextSet(from int) (int, bool) {
	for i := from + 1; i < s.n; i++ {
		if s.Get(i) {
			return i, true
		}
	}
	return 0, false
}

// PrevSet returns the largest set index strictly less than from, or false
// if none exists.
func (s *Set) PrevSet(from int) (int, bool) {
	for i := from - 1; i >= 0; i-- {
		if s.Get(i) {
			return i, true
		}
	}
	return 0, false
}

// AndPopCount returns popcount(s AND other) without allocating a combined
// bitset — used to compute vml (marked-and-visible count) each frame.
func (s *Set) AndPopCount(other *Set) int {
	n := len(s.words)
	if len(other.words) < n {
		n = len(other.words)
	}
	total := 0
	for i := 0; i < n; i++ {
		total += bits.OnesCount64(s.words[i] & other.words[i])
	}
	return total
}
