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

// Package marks is the two-tier mark subsystem: a live bitset over the
// current directory's indices, and a persisted name-pointer list that
// survives a cd but is only trustworthy while the working directory still
// equals the directory the marks were made in.
package marks

import (
	"errors"
	"fmt"

	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/bitset"
	"github.com/go-dfm/dfm/internal/lookup"
)

// ErrMaterializeFailed wraps the underlying arena error when Materialize
// or RunChunked has to roll back a partially-copied mark list for lack of
// arena space.
var ErrMaterializeFailed = errors.New("marks: materialize failed")

// PersistedMark is one entry of the name-pointer list: an offset/length
// into the arena's backward mark-name region, plus the entry's short hash
// (echoed from the physical record at staging time) so rebuild-from-
// persisted can sanity-check a hash-table hit cheaply before trusting it.
type PersistedMark struct {
	Offset uint32
	Length int
	Hash   uint8
}

// Marks owns the live bitset, its popcount against the visible set (vml),
// and the persisted list used to survive a cd.
type Marks struct {
	dir    string
	hasDir bool

	live *bitset.Set
	vml  int

	persisted      []PersistedMark
	persistedFresh bool // true once Materialize has captured the current live set
}

// New returns an empty mark set sized for a directory of n entries.
func New(n int) *Marks {
	return &Marks{live: bitset.New(n)}
}

// MarkPWD reports whether cwd equals the remembered mark directory — the
// MARK_PWD flag from the spec, independent of whether the persisted list
// happens to be fresh.
func (m *Marks) MarkPWD(cwd string) bool {
	return m.hasDir && m.dir == cwd
}

// VML returns the marked-and-visible count.
func (m *Marks) VML() int { return m.vml }

// IsMarked reports whether index i is in the live set.
func (m *Marks) IsMarked(i int) bool { return m.live.Get(i) }

// Recompute refreshes vml after the visible set changes (e.g. a filter
// re-apply) without any marks themselves changing.
func (m *Marks) Recompute(visible *bitset.Set) {
	m.vml = m.live.AndPopCount(visible)
}

// enterDirectory wholesale-clears the live set when the caller starts
// marking in a directory that differs from the one currently remembered —
// marks do not follow the user across an unrelated cd.
func (m *Marks) enterDirectory(dir string, n int) {
	if m.hasDir && m.dir == dir {
		return
	}
	m.dir = dir
	m.hasDir = true
	m.live.Reset(n)
	m.persisted = m.persisted[:0]
	m.persistedFresh = false
	m.vml = 0
}

// Toggle flips index i's mark flag (on both the virtual record and the
// live bitset), recomputes vml, and invalidates the persisted list: after
// any toggle, Materialize must run again before a cd can carry the
// selection forward.
func (m *Marks) Toggle(dir string, d *arena.Dir, i int, visible *bitset.Set) {
	m.enterDirectory(dir, d.Len())

	now := !m.live.Get(i)
	m.live.Set(i, now)
	d.Entries[i].Mark = now
	m.live.Rebuild()
	m.vml = m.live.AndPopCount(visible)
	m.persistedFresh = false
}

// Materialize copies every entry's name in the live mark set into the
// reverse-growing mark arena and appends a pointer to the persisted list,
// replacing whatever list was there before. If any single copy fails for
// lack of space, the whole attempt rolls back: the persisted list and the
// arena's mark cursor are both restored to their pre-call snapshot, and
// ErrCapacity is returned.
func (m *Marks) Materialize(d *arena.Dir, dir string) error {
	if m.vml == 0 {
		m.persisted = m.persisted[:0]
		m.dir = dir
		m.hasDir = true
		m.persistedFresh = true
		return nil
	}

	snapshotCursor := d.MarkCursor()
	snapshot := append([]PersistedMark(nil), m.persisted...)
	fresh := m.persisted[:0]
	for i := 0; i < m.live.Len(); i++ {
		if !m.live.Get(i) {
			continue
		}
		name := d.Name(i)
		off, err := d.StageMarkName(name)
		if err != nil {
			d.RestoreMarkCursor(snapshotCursor)
			m.persisted = append(m.persisted[:0], snapshot...)
			return fmt.Errorf("%w: %w", ErrMaterializeFailed, err)
		}
		fresh = append(fresh, PersistedMark{Offset: off, Length: len(name), Hash: d.Physicals[i].Hash})
	}
	m.persisted = fresh
	m.dir = dir
	m.hasDir = true
	m.persistedFresh = true
	return nil
}

// PersistedNames returns the current persisted mark list's names, in
// persisted order. Bulk and Each command modes operand their %m
// substitutions against this list rather than the live bitset, since the
// whole point of materializing is to freeze the set before a mutating
// command can invalidate directory indices mid-run.
func (m *Marks) PersistedNames(d *arena.Dir) []string {
	names := make([]string, len(m.persisted))
	for i, p := range m.persisted {
		names[i] = d.MarkName(p.Offset, p.Length)
	}
	return names
}

// LiveMarkedNames returns the names of entries currently marked and visible
// in the live bitset, in ascending index order. Virtual mode iterates the
// live in-directory marks directly rather than the persisted list.
func (m *Marks) LiveMarkedNames(d *arena.Dir, visible *bitset.Set) []string {
	var names []string
	i := -1
	for {
		idx, ok := m.live.NextSet(i)
		if !ok {
			break
		}
		if visible.Get(idx) {
			names = append(names, d.Name(idx))
		}
		i = idx
	}
	return names
}

// RunChunked materializes as many marks as fit the remaining arena space,
// invokes run with those names, clears just those marks, and repeats until
// every mark has been consumed, so a selection that doesn't fit the arena
// at once is still processed in full.
// The arena's mark cursor is rewound between chunks since a chunk's staged
// names are no longer needed once run returns.
func (m *Marks) RunChunked(d *arena.Dir, dir string, visible *bitset.Set, run func(names []string) error) error {
	for m.vml > 0 {
		snapshotCursor := d.MarkCursor()
		var chunkNames []string
		var chunkIdx []int
		for i := 0; i < m.live.Len(); i++ {
			if !m.live.Get(i) || !visible.Get(i) {
				continue
			}
			name := d.Name(i)
			off, err := d.StageMarkName(name)
			if err != nil {
				break // arena full for this chunk; run with what fit so far
			}
			chunkNames = append(chunkNames, d.MarkName(off, len(name)))
			chunkIdx = append(chunkIdx, i)
		}
		if len(chunkIdx) == 0 {
			return arena.ErrCapacity
		}
		if err := run(chunkNames); err != nil {
			d.RestoreMarkCursor(snapshotCursor)
			return err
		}
		d.RestoreMarkCursor(snapshotCursor)
		for _, i := range chunkIdx {
			m.live.Set(i, false)
			d.Entries[i].Mark = false
		}
		m.live.Rebuild()
		m.vml = m.live.AndPopCount(visible)
	}
	m.dir = dir
	m.hasDir = true
	m.persisted = m.persisted[:0]
	m.persistedFresh = true
	return nil
}

// RebuildFromPersisted re-derives the live bitset from the persisted name
// list by looking each name up in the directory hash table, used when
// re-entering the mark directory after a cd. Names that no longer exist
// (deleted while away) are silently dropped.
func (m *Marks) RebuildFromPersisted(d *arena.Dir, lk *lookup.Table, visible *bitset.Set) {
	m.live.Reset(d.Len())
	for _, p := range m.persisted {
		name := d.MarkName(p.Offset, p.Length)
		idx, ok := lk.FindEntry(name)
		if !ok {
			continue
		}
		d.Entries[idx].Mark = true
		m.live.Set(idx, true)
	}
	m.live.Rebuild()
	m.vml = m.live.AndPopCount(visible)
}

// OnReload handles a full directory reload: the live bitset's index
// positions no longer mean anything (the arena was rebuilt from scratch),
// so it is always reset. If the reload happened while still inside the
// mark directory, the selection is recovered via RebuildFromPersisted
// (name-based, so it survives entries moving to new indices); otherwise
// the mark set is simply empty until the user marks again.
func (m *Marks) OnReload(d *arena.Dir, lk *lookup.Table, cwd string, visible *bitset.Set) {
	if m.MarkPWD(cwd) {
		m.RebuildFromPersisted(d, lk, visible)
		return
	}
	m.live.Reset(d.Len())
	m.vml = 0
}

// NextMarked returns the smallest marked-and-visible index strictly
// greater than from.
func (m *Marks) NextMarked(visible *bitset.Set, from int) (int, bool) {
	i := from
	for {
		idx, ok := m.live.NextSet(i)
		if !ok {
			return 0, false
		}
		if visible.Get(idx) {
			return idx, true
		}
		i = idx
	}
}

// PrevMarked returns the largest marked-and-visible index strictly less
// than from.
func (m *Marks) PrevMarked(visible *bitset.Set, from int) (int, bool) {
	i := from
	for {
		idx, ok := m.live.PrevSet(i)
		if !ok {
			return 0, false
		}
		if visible.Get(idx) {
			return idx, true
		}
		i = idx
	}
}
