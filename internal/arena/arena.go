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

package arena

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// ErrCapacity is returned whenever a fixed-capacity buffer would need to
// grow to satisfy a request: the directory has too many entries, the name
// arena (or its shared mark region) is full, or an argv staging area would
// overflow. Callers surface this as a status-line message and continue.
var ErrCapacity = errors.New("arena: capacity exhausted")

// Dir is one directory's entry table: a virtual-record array plus a name
// arena. The name arena is one buffer with two cursors: fwd grows upward
// holding entry names (pointed to by Virtual.NameOffset), and back grows
// downward holding mark-list name copies (§ mark subsystem). An insert that
// would make fwd cross back fails with ErrCapacity instead of growing.
type Dir struct {
	Entries   []Virtual
	Physicals []Physical // parallel to Entries; physical record per entry
	Links     []string   // parallel to Entries; symlink target, "" if none

	names    []byte
	fwd      uint32 // next free forward offset
	back     uint32 // next free backward offset (exclusive upper bound)
}

// NewDir allocates a Dir with a name arena of the given byte capacity.
func NewDir(nameArenaCapacity int) *Dir {
	return &Dir{
		names: make([]byte, nameArenaCapacity),
		fwd:   0,
		back:  uint32(nameArenaCapacity),
	}
}

// Reset empties the directory model, keeping the underlying buffers.
func (d *Dir) Reset() {
	d.Entries = d.Entries[:0]
	d.Physicals = d.Physicals[:0]
	d.Links = d.Links[:0]
	d.fwd = 0
	d.back = uint32(len(d.names))
}

// Len returns the number of entries (including tombstoned ones still
// occupying a slot until the next full reload).
func (d *Dir) Len() int { return len(d.Entries) }

// Name returns the entry's name, read out of the forward name arena.
func (d *Dir) Name(i int) string {
	v := d.Entries[i]
	n := int(d.Physicals[i].NameLen)
	off := int(v.NameOffset)
	return string(d.names[off : off+n])
}

// classify scans a name once to fill in the physical record's utf8/wide
// bits and the virtual record's first-byte/leading-dot bits.
func classify(name string) (utf8Present, wide bool, firstByte byte, leadingDot bool) {
	if len(name) > 0 {
		firstByte = name[0]
		leadingDot = name[0] == '.'
	}
	for _, r := range name {
		if r >= utf8.RuneSelf {
			utf8Present = true
			if width.LookupRune(r).Kind() == width.EastAsianWide || width.LookupRune(r).Kind() == width.EastAsianFullwidth {
				wide = true
			}
		}
	}
	return
}

// AddEntry appends a new entry with the given name and physical metadata,
// writing the name into the forward name arena. It fails closed with
// ErrCapacity if the forward cursor would cross the backward mark cursor.
func (d *Dir) AddEntry(name string, phys Physical, link string) error {
	if uint32(d.fwd)+uint32(len(name)) > d.back {
		return ErrCapacity
	}
	if len(name) > MaxNameOffset {
		return ErrCapacity
	}

	off := d.fwd
	copy(d.names[off:], name)
	d.fwd += uint32(len(name))

	utf8Present, wide, firstByte, leadingDot := classify(name)
	phys.UTF8 = utf8Present
	phys.Wide = wide
	phys.NameLen = uint8(len(name))

	d.Entries = append(d.Entries, Virtual{
		NameOffset: off,
		FirstByte:  firstByte,
		LeadingDot: leadingDot,
		Visible:    true,
	})
	d.Physicals = append(d.Physicals, phys)
	d.Links = append(d.Links, link)
	return nil
}

// StageMarkName copies name into the backward-growing mark-name arena and
// returns its offset (callers store this as a persisted mark pointer). It
// fails closed with ErrCapacity if the backward cursor would cross forward.
func (d *Dir) StageMarkName(name string) (uint32, error) {
	need := uint32(len(name))
	if d.back < d.fwd+need {
		return 0, ErrCapacity
	}
	d.back -= need
	copy(d.names[d.back:], name)
	return d.back, nil
}

// MarkName reads a name previously staged with StageMarkName.
func (d *Dir) MarkName(offset uint32, length int) string {
	return string(d.names[offset : offset+uint32(length)])
}

// FreeBytes reports how much room remains between the two cursors.
func (d *Dir) FreeBytes() int {
	return int(d.back) - int(d.fwd)
}

// MarkCursor returns the current backward mark-arena cursor, letting a
// caller snapshot it before a multi-name staging operation.
func (d *Dir) MarkCursor() uint32 { return d.back }

// RestoreMarkCursor rewinds the backward mark-arena cursor to a previously
// snapshotted value, discarding (without zeroing) any mark names staged
// since. Used by the mark subsystem to roll back a partially failed
// materialize, and to reclaim space between chunks of a chunked
// materialize.
func (d *Dir) RestoreMarkCursor(back uint32) { d.back = back }
