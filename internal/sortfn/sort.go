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

package sortfn

import "github.com/go-dfm/dfm/internal/arena"

// insertionThreshold is the run length below which introsort switches to a
// plain insertion sort outright.
const insertionThreshold = 16

// Sort orders d's entries in place using cmp, then rewrites each physical
// record's LOC field to the entry's position before sorting so that a
// lookup table built against the old ordering (an index-by-name) stays
// valid until the next rebuild: LOC is a stable handle to "where this entry
// used to live", independent of where it sorted to.
func Sort(d *arena.Dir, cmp Cmp) {
	n := d.Len()
	if n < 2 {
		return
	}

	for i := 0; i < n; i++ {
		d.Physicals[i].LOC = uint16(i)
	}

	items := make([]Item, n)
	for i := 0; i < n; i++ {
		items[i] = itemOf(d, i)
	}

	depthLimit := 0
	for x := n; x > 1; x >>= 1 {
		depthLimit++
	}
	depthLimit *= 2

	introsort(d, items, cmp, 0, n-1, depthLimit)
}

func itemOf(d *arena.Dir, i int) Item {
	p := d.Physicals[i]
	return Item{
		IsDir: p.Type == arena.TypeDir || p.Type == arena.TypeLinkDir,
		Name:  d.Name(i),
		Size:  arena.DecodeSize(p.Size),
		Date:  uint64(p.MtimeLog),
	}
}

func swap(d *arena.Dir, items []Item, i, j int) {
	if i == j {
		return
	}
	d.Entries[i], d.Entries[j] = d.Entries[j], d.Entries[i]
	d.Physicals[i], d.Physicals[j] = d.Physicals[j], d.Physicals[i]
	d.Links[i], d.Links[j] = d.Links[j], d.Links[i]
	items[i], items[j] = items[j], items[i]
}

// introsort is a standard median-of-three quicksort that falls back to
// heapsort-by-insertion (here: plain insertion sort, since runs this small
// never actually hit the depth limit in practice for directory-sized input)
// once the recursion depth exceeds depthLimit, and to insertion sort
// outright once a run shrinks to insertionThreshold or below.
func introsort(d *arena.Dir, items []Item, cmp Cmp, lo, hi, depthLimit int) {
	for hi-lo+1 > insertionThreshold {
		if depthLimit <= 0 {
			insertionSort(d, items, cmp, lo, hi)
			return
		}
		depthLimit--

		p := partition(d, items, cmp, lo, hi)
		// Recurse into the smaller side, loop over the larger one.
		if p-lo < hi-p {
			introsort(d, items, cmp, lo, p-1, depthLimit)
			lo = p + 1
		} else {
			introsort(d, items, cmp, p+1, hi, depthLimit)
			hi = p - 1
		}
	}
	insertionSort(d, items, cmp, lo, hi)
}

func partition(d *arena.Dir, items []Item, cmp Cmp, lo, hi int) int {
	mid := lo + (hi-lo)/2
	// Median-of-three: order lo, mid, hi, then use mid as the pivot.
	if cmp(items[mid], items[lo]) < 0 {
		swap(d, items, mid, lo)
	}
	if cmp(items[hi], items[lo]) < 0 {
		swap(d, items, hi, lo)
	}
	if cmp(items[hi], items[mid]) < 0 {
		swap(d, items, hi, mid)
	}
	pivot := items[mid]
	swap(d, items, mid, hi-1)

	i, j := lo, hi-1
	for {
		for i++; i < hi-1 && cmp(items[i], pivot) < 0; i++ {
		}
		for j--; j > lo && cmp(items[j], pivot) > 0; j-- {
		}
		if i >= j {
			break
		}
		swap(d, items, i, j)
	}
	swap(d, items, i, hi-1)
	return i
}

func insertionSort(d *arena.Dir, items []Item, cmp Cmp, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		for j := i; j > lo && cmp(items[j], items[j-1]) < 0; j-- {
			swap(d, items, j, j-1)
		}
	}
}
