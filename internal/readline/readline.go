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

// Package readline is the incremental, UTF-8-column-accurate split-buffer
// editor backing the command and search prompts: a left half that grows
// toward the cursor and a right half that grows away from it, so inserting
// or deleting at the cursor never has to shift the untouched side.
package readline

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Outcome tells the caller how much of the line needs to be redrawn after
// a mutation.
type Outcome int

const (
	// None: the mutation was a no-op (e.g. backspace at an empty line).
	None Outcome = iota
	// Partial: the caller may apply a minimal VT update — move the cursor
	// or insert/delete a small run of columns — rather than redraw the
	// whole line.
	Partial
	// Full: the caller must redraw the entire command line.
	Full
)

func isCombining(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r)
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// nextCluster reads one grapheme cluster (a base rune plus any combining
// marks that follow it) from the start of b, returning its byte length and
// display width.
func nextCluster(b []byte) (byteLen, colWidth int) {
	if len(b) == 0 {
		return 0, 0
	}
	r, size := utf8.DecodeRune(b)
	byteLen = size
	colWidth = runeWidth(r)
	for byteLen < len(b) {
		r2, size2 := utf8.DecodeRune(b[byteLen:])
		if !isCombining(r2) {
			break
		}
		byteLen += size2
	}
	return byteLen, colWidth
}

// prevCluster reads one grapheme cluster ending at the end of b, returning
// its byte length and display width.
func prevCluster(b []byte) (byteLen, colWidth int) {
	if len(b) == 0 {
		return 0, 0
	}
	i := len(b)
	for i > 0 {
		r, size := utf8.DecodeLastRune(b[:i])
		if !isCombining(r) {
			i -= size
			break
		}
		i -= size
	}
	baseRune, _ := utf8.DecodeRune(b[i:])
	return len(b) - i, runeWidth(baseRune)
}

func clusterWidth(s string) int {
	w := 0
	for _, r := range s {
		if isCombining(r) {
			continue
		}
		w += runeWidth(r)
	}
	return w
}

func isWordByte(b byte) bool {
	return b != ' ' && b != '\t'
}

// Editor is the split-buffer line editor: left holds bytes before the
// cursor, right holds bytes after it (kept in natural reading order, even
// though conceptually it "grows leftward from its end" as the user types
// ahead of the cursor and then backs up into it).
type Editor struct {
	prompt string
	left   []byte
	right  []byte

	leftWidth  int
	rightWidth int

	vw int // viewport column width
	vx int // cursor column within the viewport
}

// New creates an empty editor with the given prompt and viewport width.
func New(prompt string, viewportWidth int) *Editor {
	return &Editor{prompt: prompt, vw: viewportWidth}
}

// Prompt returns the editor's prompt string.
func (e *Editor) Prompt() string { return e.prompt }

// Text returns the full line (left + right), ignoring the cursor split.
func (e *Editor) Text() string { return string(e.left) + string(e.right) }

// Halves returns the buffer split at the cursor, the form filter.Query
// consumes directly so a narrowing filter re-apply never needs to
// re-join and re-split the line on every keystroke.
func (e *Editor) Halves() (left, right string) {
	return string(e.left), string(e.right)
}

// CursorColumn returns the cursor's column position in the unclipped line.
func (e *Editor) CursorColumn() int { return e.leftWidth }

// ViewportX returns the cursor's column within the viewport, after
// clamping/snapping for the configured viewport width.
func (e *Editor) ViewportX() int { return e.vx }

// SetViewportWidth updates the viewport width and recomputes vx.
func (e *Editor) SetViewportWidth(vw int) {
	e.vw = vw
	e.recomputeViewport()
}

func (e *Editor) recomputeViewport() {
	total := e.leftWidth + e.rightWidth
	switch {
	case e.vw <= 0:
		e.vx = 0
	case total <= e.vw:
		e.vx = e.leftWidth
	case e.leftWidth >= e.vw:
		e.vx = e.vw - 1
	default:
		e.vx = e.leftWidth
	}
}

// Reset clears both halves, restoring an empty line with the same prompt
// and viewport.
func (e *Editor) Reset() {
	e.left = e.left[:0]
	e.right = e.right[:0]
	e.leftWidth, e.rightWidth, e.vx = 0, 0, 0
}

// Insert appends s at the cursor (into the left half).
func (e *Editor) Insert(s string) Outcome {
	if s == "" {
		return None
	}
	atEnd := len(e.right) == 0
	e.left = append(e.left, s...)
	added := clusterWidth(s)
	e.leftWidth += added
	e.recomputeViewport()
	if atEnd && e.leftWidth <= e.vw {
		return Partial
	}
	return Full
}

// Backspace removes one cluster before the cursor.
func (e *Editor) Backspace() Outcome {
	if len(e.left) == 0 {
		return None
	}
	n, w := prevCluster(e.left)
	e.left = e.left[:len(e.left)-n]
	e.leftWidth -= w
	e.recomputeViewport()
	if len(e.right) == 0 {
		return Partial
	}
	return Full
}

// Delete removes one cluster after the cursor.
func (e *Editor) Delete() Outcome {
	if len(e.right) == 0 {
		return None
	}
	n, w := nextCluster(e.right)
	e.right = e.right[n:]
	e.rightWidth -= w
	e.recomputeViewport()
	return Full
}

// DeleteToHome clears everything before the cursor.
func (e *Editor) DeleteToHome() Outcome {
	if len(e.left) == 0 {
		return None
	}
	e.left = e.left[:0]
	e.leftWidth = 0
	e.recomputeViewport()
	return Full
}

// DeleteToEnd clears everything after the cursor.
func (e *Editor) DeleteToEnd() Outcome {
	if len(e.right) == 0 {
		return None
	}
	e.right = e.right[:0]
	e.rightWidth = 0
	e.recomputeViewport()
	return Full
}

// MoveLeft moves the cursor back one cluster.
func (e *Editor) MoveLeft() Outcome {
	if len(e.left) == 0 {
		return None
	}
	n, w := prevCluster(e.left)
	moved := append([]byte(nil), e.left[len(e.left)-n:]...)
	e.left = e.left[:len(e.left)-n]
	e.right = append(moved, e.right...)
	e.leftWidth -= w
	e.rightWidth += w
	e.recomputeViewport()
	return Partial
}

// MoveRight moves the cursor forward one cluster.
func (e *Editor) MoveRight() Outcome {
	if len(e.right) == 0 {
		return None
	}
	n, w := nextCluster(e.right)
	moved := e.right[:n]
	e.right = e.right[n:]
	e.left = append(e.left, moved...)
	e.leftWidth += w
	e.rightWidth -= w
	e.recomputeViewport()
	return Partial
}

// Home moves the cursor to the start of the line.
func (e *Editor) Home() Outcome {
	if len(e.left) == 0 {
		return None
	}
	e.right = append(e.left, e.right...)
	e.left = e.left[:0]
	e.rightWidth += e.leftWidth
	e.leftWidth = 0
	e.recomputeViewport()
	return Full
}

// End moves the cursor to the end of the line.
func (e *Editor) End() Outcome {
	if len(e.right) == 0 {
		return None
	}
	e.left = append(e.left, e.right...)
	e.leftWidth += e.rightWidth
	e.right, e.rightWidth = e.right[:0], 0
	e.recomputeViewport()
	return Full
}

// WordLeft moves the cursor to the start of the previous word.
func (e *Editor) WordLeft() Outcome {
	moved := false
	for len(e.left) > 0 && !isWordByte(e.left[len(e.left)-1]) {
		if e.MoveLeft() == None {
			break
		}
		moved = true
	}
	for len(e.left) > 0 && isWordByte(e.left[len(e.left)-1]) {
		e.MoveLeft()
		moved = true
	}
	if !moved {
		return None
	}
	return Partial
}

// WordRight moves the cursor forward past the next word, to its end.
func (e *Editor) WordRight() Outcome {
	moved := false
	for len(e.right) > 0 && !isWordByte(e.right[0]) {
		if e.MoveRight() == None {
			break
		}
		moved = true
	}
	for len(e.right) > 0 && isWordByte(e.right[0]) {
		e.MoveRight()
		moved = true
	}
	if !moved {
		return None
	}
	return Partial
}

// DeleteWordLeft deletes from the cursor back to the start of the previous
// word.
func (e *Editor) DeleteWordLeft() Outcome {
	start := len(e.left)
	for len(e.left) > 0 && !isWordByte(e.left[len(e.left)-1]) {
		n, _ := prevCluster(e.left)
		e.left = e.left[:len(e.left)-n]
	}
	for len(e.left) > 0 && isWordByte(e.left[len(e.left)-1]) {
		n, _ := prevCluster(e.left)
		e.left = e.left[:len(e.left)-n]
	}
	if len(e.left) == start {
		return None
	}
	e.leftWidth = clusterWidth(string(e.left))
	e.recomputeViewport()
	return Full
}

// DeleteWordRight deletes from the cursor forward to the end of the next
// word.
func (e *Editor) DeleteWordRight() Outcome {
	start := len(e.right)
	for len(e.right) > 0 && !isWordByte(e.right[0]) {
		n, _ := nextCluster(e.right)
		e.right = e.right[n:]
	}
	for len(e.right) > 0 && isWordByte(e.right[0]) {
		n, _ := nextCluster(e.right)
		e.right = e.right[n:]
	}
	if len(e.right) == start {
		return None
	}
	e.rightWidth = clusterWidth(string(e.right))
	e.recomputeViewport()
	return Full
}

// Cancel discards the current line, returning it to empty.
func (e *Editor) Cancel() Outcome {
	if len(e.left) == 0 && len(e.right) == 0 {
		return None
	}
	e.Reset()
	return Full
}

// Submit returns the full line and resets the editor for the next prompt.
func (e *Editor) Submit() string {
	s := e.Text()
	e.Reset()
	return s
}
