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

// Package lookup is the open-addressed hash table behind name→index lookup
// (used to rebuild marks from the persisted list) and the drawer's
// truncated-name rendering cache. Both kinds of record share one slot array;
// a slot's Kind field discriminates which union member is live, the same
// trick the bit-packed C original plays with its high bit.
package lookup

import "hash/fnv"

const (
	primaryTagBits   = 11
	secondaryTagBits = 5
	primaryTagMask   = 1<<primaryTagBits - 1
	secondaryTagMask = 1<<secondaryTagBits - 1
)

// Kind discriminates what a non-empty slot holds.
type Kind uint8

const (
	Empty Kind = iota
	EntryRecord
	CacheRecord
)

// slot holds either an EntryRecord (directory index, keyed by name hash) or
// a CacheRecord (a memoized truncated/colored name render, keyed by name
// hash mixed with render width and view mode). primary/secondary are the two
// tag fragments split out of the 32-bit FNV-1a hash, used to shortcut probe
// comparisons without touching the name arena.
type slot struct {
	kind      Kind
	primary   uint16
	secondary uint8
	hash      uint32

	// EntryRecord payload.
	index int

	// CacheRecord payload.
	text string
}

// Table is a fixed-capacity (power-of-two sized) open-addressed table.
type Table struct {
	slots []slot
	mask  uint32
	count int
}

// New allocates a table with room for at least capacityHint live records.
func New(capacityHint int) *Table {
	size := 16
	for size < capacityHint*2 {
		size *= 2
	}
	return &Table{slots: make([]slot, size), mask: uint32(size - 1)}
}

// Hash computes the 32-bit FNV-1a hash of name.
func Hash(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

func tags(h uint32) (primary uint16, secondary uint8) {
	primary = uint16(h & primaryTagMask)
	secondary = uint8((h >> primaryTagBits) & secondaryTagMask)
	return
}

// Reset clears the table, keeping the backing array.
func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = slot{}
	}
	t.count = 0
}

func (t *Table) probe(h uint32) int {
	return int(h & t.mask)
}

// findSlot returns the index of an existing matching slot, or the index of
// the first empty slot found while probing (for insertion), plus whether a
// match was found.
func (t *Table) findSlot(name string, h uint32) (idx int, found bool) {
	primary, secondary := tags(h)
	i := t.probe(h)
	firstEmpty := -1
	for probes := 0; probes < len(t.slots); probes++ {
		s := &t.slots[i]
		if s.kind == Empty {
			if firstEmpty == -1 {
				firstEmpty = i
			}
			return firstEmpty, false
		}
		if s.hash == h && s.primary == primary && s.secondary == secondary {
			return i, true
		}
		i = int(uint32(i+1) & t.mask)
	}
	return firstEmpty, false
}

// InsertEntry records that name lives at directory index idx, evicting any
// CacheRecord occupying the slot it lands on (opportunistic eviction: entry
// inserts always win over cache records since correctness depends on them).
func (t *Table) InsertEntry(name string, idx int) {
	h := Hash(name)
	slotIdx, found := t.findSlot(name, h)
	if slotIdx == -1 {
		// No empty slot on the probe path: evict the first cache record.
		for i, probes := t.probe(h), 0; probes < len(t.slots); probes++ {
			if t.slots[i].kind == CacheRecord {
				slotIdx = i
				break
			}
			i = int(uint32(i+1) & t.mask)
		}
		if slotIdx == -1 {
			return // table full of entry records; caller should have sized generously
		}
		found = true // the evicted record is already counted
	}
	primary, secondary := tags(h)
	if !found {
		t.count++
	}
	t.slots[slotIdx] = slot{kind: EntryRecord, primary: primary, secondary: secondary, hash: h, index: idx}
}

// FindEntry looks up name, returning its directory index and whether it was
// found (used by the mark subsystem's rebuild-from-persisted walk).
func (t *Table) FindEntry(name string) (int, bool) {
	h := Hash(name)
	idx, found := t.findSlot(name, h)
	if !found || t.slots[idx].kind != EntryRecord {
		return 0, false
	}
	return t.slots[idx].index, true
}

// cacheHash mixes a name hash with render parameters so the same name at a
// different width/view renders to a distinct cache key.
func cacheHash(nameHash uint32, width int, view byte) uint32 {
	h := nameHash
	h ^= uint32(width) * 0x9e3779b1
	h ^= uint32(view) << 24
	return h
}

// CachePut memoizes a rendered (truncated) name for (name, width, view).
func (t *Table) CachePut(name string, width int, view byte, rendered string) {
	h := cacheHash(Hash(name), width, view)
	slotIdx, found := t.findSlot(name, h)
	if slotIdx == -1 {
		return
	}
	primary, secondary := tags(h)
	if !found {
		t.count++
	}
	t.slots[slotIdx] = slot{kind: CacheRecord, primary: primary, secondary: secondary, hash: h, text: rendered}
}

// CacheGet returns a memoized render for (name, width, view), if present.
func (t *Table) CacheGet(name string, width int, view byte) (string, bool) {
	h := cacheHash(Hash(name), width, view)
	slotIdx, found := t.findSlot(name, h)
	if !found || t.slots[slotIdx].kind != CacheRecord {
		return "", false
	}
	return t.slots[slotIdx].text, true
}

// Len reports the number of live records of either kind.
func (t *Table) Len() int { return t.count }
