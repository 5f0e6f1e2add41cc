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

// Package drawer writes VT output straight to the caller's writer: the
// directory pane, nav bar, and overlaid message/error line, wrapped per frame in the
// terminal's synchronized-update sequence so a partial repaint is never
// visible to the user as flicker.
package drawer

import (
	"fmt"
	"io"
)

const (
	syncBegin = "\x1b[?2026h"
	syncEnd   = "\x1b[?2026l"

	altScreenOn  = "\x1b[?1049h"
	altScreenOff = "\x1b[?1049l"

	cursorHide = "\x1b[?25l"
	cursorShow = "\x1b[?25h"

	pasteOn  = "\x1b[?2004h"
	pasteOff = "\x1b[?2004l"

	sgrReset = "\x1b[0m"

	eraseLine    = "\x1b[2K"
	cursorUpOne  = "\x1b[A"
	lineFeed     = "\r\n"

	resetScrollRegion = "\x1b[r"
)

// cup (cursor position) moves the cursor to 1-indexed row y, column x.
func cup(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

// scrollRegion sets the scrolling region to rows [top, bottom] inclusive,
// 1-indexed.
func scrollRegion(top, bottom int) string {
	return fmt.Sprintf("\x1b[%d;%dr", top, bottom)
}

// insertLines / deleteLines / eraseChars implement the minimal-diff line
// operations named in the spec (CSI L / CSI P / CSI @).
func insertLines(n int) string { return fmt.Sprintf("\x1b[%dL", n) }
func deleteLines(n int) string { return fmt.Sprintf("\x1b[%dP", n) }
func eraseChars(n int) string  { return fmt.Sprintf("\x1b[%d@", n) }

// Begin opens a frame: enter the synchronized-update region so the
// terminal buffers everything written until End.
func Begin(w io.Writer) {
	io.WriteString(w, syncBegin)
}

// End closes a frame, flushing the synchronized-update region.
func End(w io.Writer) {
	io.WriteString(w, syncEnd)
}

// EnterScreen switches to the alternate screen, hides the cursor, enables
// bracketed paste, and sets the scrolling region to [1, rows-1] so the nav
// bar on the last row never scrolls.
func EnterScreen(w io.Writer, rows int) {
	io.WriteString(w, altScreenOn)
	io.WriteString(w, cursorHide)
	io.WriteString(w, pasteOn)
	if rows > 1 {
		io.WriteString(w, scrollRegion(1, rows-1))
	}
}

// LeaveScreen undoes EnterScreen, restoring the cursor and the default
// scrolling region before returning to the primary screen.
func LeaveScreen(w io.Writer) {
	io.WriteString(w, resetScrollRegion)
	io.WriteString(w, pasteOff)
	io.WriteString(w, cursorShow)
	io.WriteString(w, altScreenOff)
}
