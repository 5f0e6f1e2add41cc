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
	"path/filepath"

	"github.com/go-dfm/dfm/cfg"
	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/filter"
)

// moveCursor shifts the cursor by delta ranks, clamping to the visible
// range, and scrolls the viewport just enough to keep it on screen.
func (l *Loop) moveCursor(delta int) {
	count := l.visible.Bits().PopCount()
	if count == 0 {
		return
	}
	rank := l.cursorRank + delta
	if rank < 0 {
		rank = 0
	}
	if rank >= count {
		rank = count - 1
	}
	if rank == l.cursorRank {
		return
	}

	idx, ok := l.visible.Bits().Select(rank)
	if !ok {
		return
	}

	oldRank := l.cursorRank
	l.cursorIdx = idx
	l.cursorRank = rank

	switch {
	case rank < l.firstRank:
		l.firstRank = rank
		l.flags.set(flagRedrawDir)
	case rank >= l.firstRank+l.dirRows:
		l.firstRank = rank - l.dirRows + 1
		l.flags.set(flagRedrawDir)
	case l.firstRank == 0 && (rank == oldRank+1 || rank == oldRank-1):
		// Fast path only applies when the viewport starts at rank 0: the
		// drawer's scroll-move positions rows by absolute rank, which only
		// matches the screen row when nothing above rank 0 is scrolled off.
		l.scrollOldRank, l.scrollNewRank, l.pendingFastScroll = oldRank, rank, true
	default:
		l.flags.set(flagRedrawDir)
	}
	l.flags.set(flagRedrawNav)
}

// pageDown/pageUp move the cursor by one screenful, matching the C
// original's page actions (one draw-page per key press).
func (l *Loop) pageDown() { l.moveCursor(max(l.dirRows, 1)) }
func (l *Loop) pageUp()   { l.moveCursor(-max(l.dirRows, 1)) }

func (l *Loop) scrollTop() {
	l.moveCursor(-l.visible.Bits().PopCount())
}

func (l *Loop) scrollBottom() {
	l.moveCursor(l.visible.Bits().PopCount())
}

// openCursorEntry is fm_open: a directory entry (or a resolved symlink to
// one) is cd'd into; in picker mode a regular file is printed and the
// loop exits; otherwise the opener command runs against it.
func (l *Loop) openCursorEntry() {
	if l.cursorIdx < 0 || l.cursorIdx >= l.dir.Len() {
		return
	}
	name := l.dir.Name(l.cursorIdx)
	phys := l.dir.Physicals[l.cursorIdx]

	if phys.Type == arena.TypeDir || phys.Type == arena.TypeLinkDir {
		_ = l.cd(filepath.Join(l.cwd, name))
		return
	}

	if l.flags.has(flagPicker) {
		l.pickedPath = filepath.Join(l.cwd, name)
		l.flags.set(flagPrintPWD)
		l.exitRequested = true
		return
	}

	opener := l.cfg.Opener
	if opener == "" {
		l.flags.set(flagError)
		l.setMessage("DFM_OPENER not set", true)
		return
	}
	l.runTemplate(opener+" %f", true)
}

// cdUp is act_cd_up: clears an active search first (matching the C
// original's "escape search before going up" behavior), otherwise cd's to
// the parent, unless already at the filesystem root.
func (l *Loop) cdUp() {
	if l.flags.has(flagSearch) {
		l.cancelPrompt()
		l.flags.clear(flagSearch)
		l.query = filter.Query{}
		l.sortAndFilter()
		l.resetCursor()
		l.flags.set(flagRedrawDir | flagRedrawNav)
		return
	}
	if l.cwd == "/" {
		return
	}
	_ = l.cd(filepath.Dir(l.cwd))
}

// toggleHidden flips the HIDDEN flag and re-filters.
func (l *Loop) toggleHidden() {
	if l.flags.has(flagHidden) {
		l.flags.clear(flagHidden)
	} else {
		l.flags.set(flagHidden)
	}
	l.sortAndFilter()
	l.resetCursor()
	l.flags.set(flagRedrawDir | flagRedrawNav)
}

// toggleMark marks or unmarks the entry under the cursor and advances
// the cursor by one, mirroring the common "space marks and moves down"
// binding.
func (l *Loop) toggleMark() {
	if l.cursorIdx < 0 {
		return
	}
	l.marks.Toggle(l.cwd, l.dir, l.cursorIdx, l.visible.Bits())
	l.syncMarkPWDFlag()
	l.flags.set(flagRedrawDir | flagRedrawNav)
	l.moveCursor(1)
}

var viewCycle = []cfg.ViewMode{cfg.ViewName, cfg.ViewSize, cfg.ViewPermission, cfg.ViewTime, cfg.ViewAll}

// cycleView is act_view_next: n -> s -> p -> t -> a -> n.
func (l *Loop) cycleView() {
	for i, v := range viewCycle {
		if v == l.viewMode {
			l.viewMode = viewCycle[(i+1)%len(viewCycle)]
			l.flags.set(flagRedrawDir)
			return
		}
	}
	l.viewMode = cfg.ViewName
	l.flags.set(flagRedrawDir)
}

var sortCycle = []cfg.SortMode{
	cfg.SortNatural, cfg.SortNaturalReversed, cfg.SortSize, cfg.SortSizeReversed,
	cfg.SortDate, cfg.SortDateReversed, cfg.SortExtension,
}

// cycleSort is act_sort_next: natural -> N -> s -> S -> d -> D -> e -> n.
func (l *Loop) cycleSort() {
	for i, s := range sortCycle {
		if s == l.sortMode {
			l.sortMode = sortCycle[(i+1)%len(sortCycle)]
			l.sortAndFilter()
			l.resetCursor()
			l.flags.set(flagRedrawDir | flagRedrawNav)
			return
		}
	}
	l.sortMode = cfg.SortNatural
}

// redraw forces a full repaint without touching the arena.
func (l *Loop) redraw() {
	l.flags.set(flagRedrawAll)
}

// refresh forces a full directory reload, as if the watch pump had
// reported an overflow.
func (l *Loop) refresh() {
	saved := l.cursorName()
	if err := l.loadDirectory(l.cwd); err != nil {
		l.flags.set(flagError)
		l.setMessage(err.Error(), true)
		return
	}
	l.syncCursorByName(saved)
	l.flags.set(flagRedrawAll)
}

// cdBookmark is act_cd_bookmark_N: cd to the configured bookmark path, or
// surface an error if the digit has no bookmark bound.
func (l *Loop) cdBookmark(key string) {
	path, ok := cfg.BookmarkPath(l.cfg, key)
	if !ok || path == "" {
		l.flags.set(flagError)
		l.setMessage("DFM_BOOKMARK_"+key+" not set", true)
		return
	}
	_ = l.cd(string(path))
}

// copyPWD pipes the cwd into the configured clipboard helper.
func (l *Loop) copyPWD() {
	if l.cfg.Copyer == "" {
		l.flags.set(flagError)
		l.setMessage("DFM_COPYER not set", true)
		return
	}
	l.runTemplate("<"+l.cfg.Copyer, false)
	if !l.flags.has(flagError) {
		l.setMessage("copied pwd to clipboard", false)
	}
}

// trashMarked runs the configured trash helper against the operand set
// (cursor, or every mark).
func (l *Loop) trashMarked() {
	if l.cfg.Trash == "" {
		l.flags.set(flagError)
		l.setMessage("DFM_TRASH not set", true)
		return
	}
	l.runTemplate(l.cfg.Trash+" %m", false)
}

// quit requests a clean exit; printPWD additionally asks run.go to print
// the cwd (or the picked path, in picker mode) to stdout on the way out.
func (l *Loop) quit(printPWD bool) {
	l.exitRequested = true
	if printPWD {
		l.flags.set(flagPrintPWD)
	}
}
