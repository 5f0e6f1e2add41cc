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

package core

import (
	"fmt"
	"io"

	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/drawer"
	"github.com/go-dfm/dfm/internal/filter"
)

// visibleTotalSize sums the decoded size of every currently visible entry,
// for the nav bar's total-size field.
func (l *Loop) visibleTotalSize() uint64 {
	var total uint64
	bits := l.visible.Bits()
	for rank := 0; ; rank++ {
		idx, ok := bits.Select(rank)
		if !ok {
			break
		}
		total += arena.DecodeSize(l.dir.Physicals[idx].Size)
	}
	return total
}

func (l *Loop) navStatusFlags() drawer.StatusFlags {
	return drawer.StatusFlags{
		Root:   l.flags.has(flagRoot),
		Search: l.flags.has(flagSearch),
		Error:  l.flags.has(flagError) || l.flags.has(flagMsgErr),
		Hidden: l.flags.has(flagHidden),
	}
}

func (l *Loop) navSearchQuery() drawer.SearchQuery {
	if !l.flags.has(flagSearch) {
		return drawer.SearchQuery{}
	}
	left, right := l.editor.Halves()
	return drawer.SearchQuery{
		Active:    true,
		Substring: l.query.Mode == filter.ModeSubstring,
		Text:      left + right,
	}
}

// draw repaints whatever the current REDRAW_* bits ask for, clears them,
// overlays a staged message for exactly one frame, then flushes the
// synchronized-update region — the Go shape of fm_draw.
func (l *Loop) draw() {
	w := l.term.File()
	drawer.Begin(w)

	if l.flags.has(flagRedrawDir) {
		l.drawer.DrawDirectory(w, l.dir, l.visible.Bits(), l.marks, l.viewMode, l.firstRank, l.cursorRank, l.dirRows, l.cols)
		l.flags.clear(flagRedrawDir)
		l.pendingFastScroll = false
	} else if l.pendingFastScroll {
		l.drawer.ScrollCursorMove(w, l.dir, l.visible.Bits(), l.marks, l.viewMode, l.scrollOldRank, l.scrollNewRank, l.cols)
		l.pendingFastScroll = false
	}
	if l.flags.has(flagRedrawNav) {
		drawer.DrawNavBar(w, l.rows, l.cols, l.cursorRank, l.visible.Bits().PopCount(), l.navStatusFlags(), l.visibleTotalSize(), l.cwd, l.navSearchQuery())
		l.flags.clear(flagRedrawNav)
	}
	if l.flags.has(flagRedrawCmd) {
		l.drawPrompt(w)
		l.flags.clear(flagRedrawCmd)
	}
	if l.flags.has(flagMsg) {
		drawer.DrawMessage(w, l.rows, l.cols, l.message, l.flags.has(flagMsgErr))
		l.flags.clear(flagMsg)
		l.flags.clear(flagMsgErr)
	}
	l.positionCursor(w)

	drawer.End(w)
}

// positionCursor leaves the terminal's real cursor where the active
// prompt's readline caret is; when no prompt is active it does nothing
// (EnterScreen already hid the cursor) — DrawDirectory/DrawNavBar render the file cursor
// themselves via reverse video, so the hardware cursor only matters while
// typing.
func (l *Loop) positionCursor(w io.Writer) {
	if l.prompt == promptNone {
		return
	}
	col := len(l.promptLabel()) + l.editor.CursorColumn() + 1
	fmt.Fprintf(w, "\x1b[%d;%dH", l.rows, col)
}
