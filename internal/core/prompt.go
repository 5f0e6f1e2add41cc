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
	"os"

	"github.com/google/uuid"

	"github.com/go-dfm/dfm/internal/command"
	"github.com/go-dfm/dfm/internal/filter"
	"github.com/go-dfm/dfm/internal/logger"
)

// promptLabel returns the fixed text drawn ahead of the readline caret:
// ":" for a command line, "/" or "/*" for a prefix or substring search.
func (l *Loop) promptLabel() string {
	switch l.prompt {
	case promptCommand:
		return ":"
	case promptSearch:
		if l.query.Mode == filter.ModeSubstring {
			return "/*"
		}
		return "/"
	default:
		return ""
	}
}

// drawPrompt paints the active prompt's label and readline text over the
// nav-bar row, replacing it for the duration of the prompt.
func (l *Loop) drawPrompt(w io.Writer) {
	if l.prompt == promptNone {
		return
	}
	left, right := l.editor.Halves()
	fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K", l.rows)
	io.WriteString(w, l.promptLabel())
	io.WriteString(w, left)
	io.WriteString(w, right)
}

// openCommandPrompt switches to the command prompt, seeded with initial
// text (e.g. the cursor's name, for a rename-style binding).
func (l *Loop) openCommandPrompt(initial string) {
	l.prompt = promptCommand
	l.editor.Reset()
	if initial != "" {
		l.editor.Insert(initial)
	}
	l.flags.set(flagRedrawCmd)
}

// openSearchPrompt switches to the incremental search prompt.
func (l *Loop) openSearchPrompt(substring bool) {
	l.prompt = promptSearch
	l.editor.Reset()
	mode := filter.ModePrefix
	if substring {
		mode = filter.ModeSubstring
	}
	l.query = filter.Query{Mode: mode}
	l.flags.set(flagSearch)
	l.flags.set(flagRedrawCmd | flagRedrawNav)
}

// cancelPrompt leaves the active prompt without acting on its text. A
// cancelled search keeps whatever filter was already committed (narrowing
// as-you-type already applied it); only the editor and prompt state reset.
func (l *Loop) cancelPrompt() {
	l.prompt = promptNone
	l.editor.Reset()
	l.flags.set(flagRedrawCmd | flagRedrawNav)
}

// onSearchKeystroke recomputes the visible set from the editor's current
// halves after every edit to the search prompt: the incremental path
// (ApplyIncremental) handles the common case of only appending to the end
// of a growing query, and the full recompute backs every other edit
// (backspace, mid-string insert, toggling substring mode).
func (l *Loop) onSearchKeystroke(extendedAtEnd bool) {
	left, right := l.editor.Halves()
	l.query.Left, l.query.Right = left, right

	opts := filter.Options{ShowHidden: l.flags.has(flagHidden), Query: l.query}
	if extendedAtEnd && right == "" {
		filter.ApplyIncremental(l.dir, l.visible, opts)
	} else {
		filter.Apply(l.dir, l.visible, opts)
	}
	l.marks.Recompute(l.visible.Bits())
	l.resetCursor()
	l.flags.set(flagRedrawDir | flagRedrawNav)
}

// submitSearch commits the current prompt: a single visible match opens
// it directly, otherwise the query stays applied and the cursor parks on
// the first match.
func (l *Loop) submitSearch() {
	l.prompt = promptNone
	l.editor.Reset()
	l.flags.set(flagRedrawCmd | flagRedrawNav)

	l.resetCursor()
	if l.visible.Bits().PopCount() == 1 {
		l.openCursorEntry()
	}
}

// commandExpandContext builds the %d/%f/%m substitution context for
// whatever is about to run: the cwd, the entry under the cursor, and the
// mark-name list — the live marked-and-visible names when the cwd is the
// mark directory, otherwise the persisted list — (falling back to just the
// cursor when nothing is marked).
func (l *Loop) commandExpandContext() command.ExpandContext {
	names := l.marks.PersistedNames(l.dir)
	if l.marks.MarkPWD(l.cwd) {
		names = l.marks.LiveMarkedNames(l.dir, l.visible.Bits())
	}
	return command.ExpandContext{
		Dir:       l.cwd,
		Cursor:    l.cursorName(),
		Marks:     names,
		LookupEnv: os.LookupEnv,
	}
}

// submitCommand parses and runs the text on the command prompt against
// the cursor/mark operand set, picking an execution mode the way
// DetermineMode describes, then tags and reaps any background spawn.
func (l *Loop) submitCommand(fileCursor bool) {
	text := l.editor.Text()
	l.prompt = promptNone
	l.editor.Reset()
	l.flags.set(flagRedrawCmd | flagRedrawNav)

	if text == "" {
		return
	}
	l.runTemplate(text, fileCursor)
}

// runTemplate is the shared path between a typed command and a bound
// key's configured template: parse, pick a mode, expand, then run. No
// overwrite-conflict pre-flight (command.ResolveConflicts) runs on this
// path.
func (l *Loop) runTemplate(raw string, fileCursor bool) {
	t := command.Parse(raw)
	mode := command.DetermineMode(t, fileCursor, l.marks.VML(), l.marks.MarkPWD(l.cwd))

	ctx := l.commandExpandContext()
	argvs, err := t.Invocations(mode, ctx, l.shell(), l.programName)
	if err != nil {
		l.flags.set(flagError)
		l.setMessage(err.Error(), true)
		return
	}

	opts := command.RunOptions{
		Shell:       l.shell(),
		ProgramName: l.programName,
		TTY:         l.term.File(),
		DevNull:     l.devNull,
		Controller:  l.term,
	}

	cls, background, err := command.Run(t, argvs, opts)
	for _, bg := range background {
		job := &backgroundJob{id: uuid.New(), summary: raw, proc: bg, done: bg.WaitAsync()}
		l.background = append(l.background, job)
		logger.Infof("core: background [%s] started: %s", job.id, raw)
	}
	if err != nil {
		l.flags.set(flagError)
		l.setMessage(err.Error(), true)
		return
	}
	if msg := cls.Message(); msg != "" {
		l.flags.set(flagError)
		l.setMessage(msg, true)
		return
	}
	l.flags.set(flagDirty)
}

func (l *Loop) shell() string {
	if l.cfg.Shell != "" {
		return l.cfg.Shell
	}
	return "/bin/sh"
}
