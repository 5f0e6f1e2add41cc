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

// Package arena holds the bit-packed, fixed-capacity representation of one
// directory's entries: a virtual-record array indexed by directory position,
// a physical-record slice kept parallel to it, and the forward
// name arena sharing one buffer with the backward-growing mark-name arena.
package arena

// Virtual is the 32-bit-equivalent per-entry record indexed by directory
// position: where its name lives in the name arena, its first byte (for
// quick bucket classification), and its tombstone/mark/visible/leading-dot
// flags. In the C original this packs into one uint32; here it is an
// ordinary struct, since Go gives up nothing by not packing it, but the
// field widths below are the authoritative bit budget other code reasons
// about (NameOffsetBits etc.).
type Virtual struct {
	NameOffset uint32 // byte offset into the name arena (budget: 20 bits)
	FirstByte  byte   // first byte of the name, for bucket classification
	Tombstone  bool   // true once logically deleted (slot kept until the next reload)
	Mark       bool   // mirrored into the live mark bitset
	Visible    bool   // mirrored into the visible bitset
	LeadingDot bool   // name begins with '.'
}

const (
	NameOffsetBits = 20
	MaxNameOffset  = 1<<NameOffsetBits - 1
)

// Reset clears a virtual record back to its zero value.
func (v *Virtual) Reset() {
	*v = Virtual{}
}
