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

// Package filter computes entry visibility (the hidden flag plus an
// optional prefix or substring query split around the readline cursor) and
// maintains a word-granular visible bitset with prefix popcount so the
// drawer can map "row k on screen" to an arena index in O(log n).
package filter

import (
	"strings"

	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/bitset"
)

// Mode selects how Left/Right combine against a name.
type Mode int

const (
	// ModeNone applies no query, only the hidden-file rule.
	ModeNone Mode = iota
	// ModePrefix requires the name to start with Left+Right concatenated.
	ModePrefix
	// ModeSubstring requires Left+Right to appear anywhere in the name.
	ModeSubstring
)

// Query describes the active search/filter state. Left and Right mirror
// the readline's split buffer: the two halves are concatenated (with the
// cursor conceptually between them) to form the match text, so the filter
// can be recomputed without the caller joining strings on every keystroke.
type Query struct {
	Mode  Mode
	Left  string
	Right string
}

func (q Query) text() string {
	if q.Mode == ModeNone {
		return ""
	}
	return q.Left + q.Right
}

// Options bundles the hidden-files toggle with the active query.
type Options struct {
	ShowHidden bool
	Query      Query
}

func matches(name string, leadingDot bool, opts Options) bool {
	if !opts.ShowHidden && leadingDot {
		return false
	}
	q := opts.Query.text()
	if q == "" {
		return true
	}
	switch opts.Query.Mode {
	case ModePrefix:
		return strings.HasPrefix(name, q)
	case ModeSubstring:
		return strings.Contains(name, q)
	default:
		return true
	}
}

// Visible tracks which arena indices currently pass the filter.
type Visible struct {
	bits *bitset.Set
}

// New allocates a Visible tracker sized for n entries.
func New(n int) *Visible {
	return &Visible{bits: bitset.New(n)}
}

// Bits exposes the underlying bitset (read-only use: rank/select, AND with
// the mark bitset to compute vml).
func (v *Visible) Bits() *bitset.Set { return v.bits }

// Apply is the O(n) full recompute: clears tombstoned entries, evaluates
// the filter for everything else, writes the virtual record's Visible bit,
// and rebuilds the bitset and its prefix-popcount array.
func Apply(d *arena.Dir, v *Visible, opts Options) {
	n := d.Len()
	if v.bits.Len() != n {
		v.bits.Reset(n)
	}
	for i := 0; i < n; i++ {
		vis := false
		if !d.Entries[i].Tombstone {
			vis = matches(d.Name(i), d.Entries[i].LeadingDot, opts)
		}
		d.Entries[i].Visible = vis
		v.bits.Set(i, vis)
	}
	v.bits.Rebuild()
}

// ApplyIncremental restricts the rescan to entries already marked visible,
// used when the user extends a query on the right (typing more characters
// with the cursor at the end): a name that failed to match before cannot
// start matching once the query only grows more specific, so entries
// already excluded need no re-check, and this also means a name that was
// visible stays a candidate (it may now fail the extended query).
func ApplyIncremental(d *arena.Dir, v *Visible, opts Options) {
	n := d.Len()
	if v.bits.Len() != n {
		Apply(d, v, opts)
		return
	}
	for i := 0; i < n; i++ {
		if !d.Entries[i].Visible {
			continue
		}
		vis := !d.Entries[i].Tombstone && matches(d.Name(i), d.Entries[i].LeadingDot, opts)
		d.Entries[i].Visible = vis
		v.bits.Set(i, vis)
	}
	v.bits.Rebuild()
}
