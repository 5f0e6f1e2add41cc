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

// Package core binds every other component together: it owns the
// directory arena, the lookup table, the visibility filter, the mark
// subsystem, the readline-driven command/search prompt, the drawer, and
// the watch pump, and runs the single-threaded event loop that ties them
// to one terminal.
package core

import (
	"fmt"
	"os"

	"github.com/kardianos/osext"

	"github.com/go-dfm/dfm/cfg"
	"github.com/go-dfm/dfm/clock"
	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/drawer"
	"github.com/go-dfm/dfm/internal/filter"
	"github.com/go-dfm/dfm/internal/keycode"
	"github.com/go-dfm/dfm/internal/logger"
	"github.com/go-dfm/dfm/internal/lookup"
	"github.com/go-dfm/dfm/internal/marks"
	"github.com/go-dfm/dfm/internal/readline"
	"github.com/go-dfm/dfm/internal/term"
	"github.com/go-dfm/dfm/internal/watch"
)

// nameArenaCapacity bounds the per-directory name arena: the forward and
// backward cursors both live in this many bytes, and Virtual.NameOffset's
// 20-bit budget (arena.MaxNameOffset) caps it at 1MiB regardless.
const nameArenaCapacity = 1 << 20

// flags is the core's status word: the spec's ERROR/ROOT/REDRAW_*/DIRTY/
// HIDDEN/TRUNC/MARK_PWD/MSG/PICKER/PRINT_PWD/SEARCH bits (§4.9).
type flags uint32

const (
	flagError flags = 1 << iota
	flagRoot
	flagRedrawDir
	flagRedrawNav
	flagRedrawCmd
	flagDirty
	flagDirtyWithin
	flagHidden
	flagTrunc
	flagMarkPWD
	flagMsg
	flagMsgErr
	flagPicker
	flagPrintPWD
	flagSearch
)

// flagRedrawAll is the composite the spec checks with "== FM_REDRAW": a
// full-screen repaint clearing and redrawing every region, rather than
// just whichever REDRAW_* sub-bits happen to be set.
const flagRedrawAll = flagRedrawDir | flagRedrawNav | flagRedrawCmd

func (f *flags) set(bit flags)     { *f |= bit }
func (f *flags) clear(bit flags)   { *f &^= bit }
func (f flags) has(bit flags) bool { return f&bit != 0 }

// promptKind distinguishes which readline consumer is active, mirroring
// the spec's "prompt active vs not" key-dispatch fork (§3 Readline state,
// §4.9): no prompt routes keys to navigation actions, a command prompt
// parses and executes on submit, a search prompt narrows the filter on
// every keystroke.
type promptKind int

const (
	promptNone promptKind = iota
	promptCommand
	promptSearch
)

// Loop is the running core: every component instance plus the small
// amount of cursor/viewport/status state the spec's struct fm bundles
// together.
type Loop struct {
	cfg   *cfg.Config
	clock clock.Clock

	term    *term.Terminal
	decoder *keycode.Decoder
	pump    *watch.Pump
	drawer  *drawer.Drawer
	table   *lookup.Table

	dir     *arena.Dir
	visible *filter.Visible
	marks   *marks.Marks

	editor *readline.Editor
	prompt promptKind
	query  filter.Query // the query last committed to the filter

	cwd         string
	programName string
	devNull     *os.File
	background  []*backgroundJob

	sortMode cfg.SortMode
	viewMode cfg.ViewMode

	cols, rows int // full terminal size
	dirRows    int // rows available to the directory pane (rows-1)

	cursorIdx  int // absolute arena index under the cursor, -1 if none
	cursorRank int // rank among visible entries, -1 if none
	firstRank  int // topmost visible rank currently drawn at row 1

	pendingScrollName string // set alongside flagDirtyWithin

	scrollOldRank     int // previous cursor rank, valid when pendingFastScroll
	scrollNewRank     int
	pendingFastScroll bool // draw should use ScrollCursorMove instead of a full repaint

	flags   flags
	message string

	pickedPath    string // picker-mode result, set by openCursorEntry
	exitRequested bool
	exitErr       error
}

// New resolves the running executable's own path (used as the program-name
// argument of "!"-delegated shell commands),
// opens the controlling tty, starts the watch pump, and loads startDir.
func New(c *cfg.Config, startDir string) (*Loop, error) {
	t, err := term.Open()
	if err != nil {
		return nil, fmt.Errorf("core: open terminal: %w", err)
	}

	cols, rows, err := t.Size()
	if err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("core: get terminal size: %w", err)
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("core: open null device: %w", err)
	}

	pump, err := watch.NewPump()
	if err != nil {
		_ = t.Close()
		_ = devNull.Close()
		return nil, fmt.Errorf("core: start watch pump: %w", err)
	}

	programName, err := osext.Executable()
	if err != nil {
		programName = "dfm"
	}

	table := lookup.New(1024)

	l := &Loop{
		cfg:         c,
		clock:       clock.RealClock{},
		term:        t,
		pump:        pump,
		table:       table,
		drawer:      drawer.New(table),
		dir:         arena.NewDir(nameArenaCapacity),
		visible:     filter.New(0),
		marks:       marks.New(0),
		editor:      readline.New("", cols),
		devNull:     devNull,
		programName: programName,
		sortMode:    c.Sort,
		viewMode:    c.View,
		cols:        cols,
		rows:        rows,
		dirRows:     max(rows-1, 0),
		cursorIdx:   -1,
		cursorRank:  -1,
	}
	l.decoder = keycode.NewDecoder(l.readByte)

	if c.Hidden {
		l.flags.set(flagHidden)
	}
	if c.Picker {
		l.flags.set(flagPicker)
	}
	if os.Geteuid() == 0 {
		l.flags.set(flagRoot)
	}

	if err := l.cd(startDir); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("core: load start directory: %w", err)
	}

	logger.Infof("core: ready at %s (%dx%d)", l.cwd, cols, rows)
	return l, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// syncMarkPWDFlag refreshes flagMarkPWD from whether the cwd equals the
// remembered mark directory, so the nav bar can
// show the "marks here" indicator without re-walking the mark list itself.
func (l *Loop) syncMarkPWDFlag() {
	if l.marks.MarkPWD(l.cwd) {
		l.flags.set(flagMarkPWD)
	} else {
		l.flags.clear(flagMarkPWD)
	}
}

// resetCursor places the cursor at the first visible rank, or clears it
// if the directory is empty after filtering — the cd path always starts
// a fresh directory at the top rather than attempting to preserve a
// cursor name across an unrelated directory change.
func (l *Loop) resetCursor() {
	if rank, ok := l.visible.Bits().Select(0); ok {
		l.cursorRank = 0
		l.cursorIdx = rank
	} else {
		l.cursorRank = -1
		l.cursorIdx = -1
	}
	l.firstRank = 0
}

// syncCursorByName restores the cursor after a same-directory reload by
// looking the previous name up through the hash table; a lookup failure
// (the entry no longer exists) falls back to resetCursor's position zero,
// matching fm_cursor_sync in the C original.
func (l *Loop) syncCursorByName(name string) {
	if name == "" {
		l.resetCursor()
		return
	}
	idx, ok := l.table.FindEntry(name)
	if !ok || !l.visible.Bits().Get(idx) {
		l.resetCursor()
		return
	}
	l.cursorIdx = idx
	l.cursorRank = l.visible.Bits().CountBefore(idx)
	if l.cursorRank < l.dirRows {
		l.firstRank = 0
	} else {
		l.firstRank = l.cursorRank - l.dirRows + 1
	}
}

// Close tears down the tty, watch pump, and null-device handles, restoring
// cooked mode along the way.
func (l *Loop) Close() error {
	var firstErr error
	if err := l.pump.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := l.devNull.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := l.term.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
