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
	"strings"

	"github.com/go-dfm/dfm/internal/keycode"
	"github.com/go-dfm/dfm/internal/readline"
)

// dispatchKey is fm_input: while a prompt is active, keys are routed to
// the readline editor (and the prompt's own submit/cancel/keystroke
// hooks); otherwise they drive the navigation actions.
func (l *Loop) dispatchKey(ev keycode.Event) {
	if ev.Kind == keycode.PasteStart || ev.Kind == keycode.PasteEnd {
		return // bracketed-paste markers only matter around literal text below
	}
	if l.prompt != promptNone {
		l.dispatchPromptKey(ev.Key)
		return
	}
	l.dispatchNavKey(ev.Key)
}

func (l *Loop) dispatchPromptKey(k keycode.Key) {
	switch {
	case k.Name == "Enter":
		if l.prompt == promptSearch {
			l.submitSearch()
		} else {
			l.submitCommand(false)
		}
		return
	case k.Name == "Escape" || (k.Ctrl && k.Rune == 'c'):
		l.cancelPrompt()
		return
	case k.Name == "Backspace":
		l.backspacePromptChar()
		return
	case k.Name == "Delete":
		l.editor.Delete()
		l.flags.set(flagRedrawCmd)
		return
	case k.Name == "Left":
		l.editor.MoveLeft()
		l.flags.set(flagRedrawCmd)
		return
	case k.Name == "Right":
		l.editor.MoveRight()
		l.flags.set(flagRedrawCmd)
		return
	case k.Name == "Home":
		l.editor.Home()
		l.flags.set(flagRedrawCmd)
		return
	case k.Name == "End":
		l.editor.End()
		l.flags.set(flagRedrawCmd)
		return
	case k.Ctrl && k.Rune == 'u':
		l.editor.DeleteToHome()
		l.syncSearchAfterEdit(false)
		return
	case k.Ctrl && k.Rune == 'k':
		l.editor.DeleteToEnd()
		l.syncSearchAfterEdit(false)
		return
	case k.Ctrl && k.Rune == 'w':
		l.editor.DeleteWordLeft()
		l.syncSearchAfterEdit(false)
		return
	case k.Rune != 0 && !k.Ctrl && !k.Alt:
		outcome := l.editor.Insert(string(k.Rune))
		l.syncSearchAfterEdit(outcome == readline.Partial)
		return
	}
}

// backspacePromptChar handles Backspace for both prompt kinds: a command
// prompt emptied back to nothing cancels itself (matching the common
// readline convention), a search prompt re-applies the narrowed query.
func (l *Loop) backspacePromptChar() {
	outcome := l.editor.Backspace()
	if l.prompt == promptSearch {
		l.syncSearchAfterEdit(false)
		return
	}
	if outcome == readline.None {
		l.cancelPrompt()
		return
	}
	l.flags.set(flagRedrawCmd)
}

// syncSearchAfterEdit is a no-op outside the search prompt, and otherwise
// recomputes the filtered view after an editor mutation.
func (l *Loop) syncSearchAfterEdit(extendedAtEnd bool) {
	if l.prompt != promptSearch {
		l.flags.set(flagRedrawCmd)
		return
	}
	l.onSearchKeystroke(extendedAtEnd)
	l.flags.set(flagRedrawCmd)
}

// dispatchNavKey is the no-prompt key table: navigation, view/sort
// cycling, marks, bookmarks, and the env-hook commands, grounded in the
// C original's act_* functions.
func (l *Loop) dispatchNavKey(k keycode.Key) {
	switch k.Name {
	case "Up":
		l.moveCursor(-1)
		return
	case "Down":
		l.moveCursor(1)
		return
	case "PageUp":
		l.pageUp()
		return
	case "PageDown":
		l.pageDown()
		return
	case "Home":
		l.scrollTop()
		return
	case "End":
		l.scrollBottom()
		return
	case "Left":
		l.cdUp()
		return
	case "Right", "Enter":
		l.openCursorEntry()
		return
	}

	if k.Ctrl {
		switch k.Rune {
		case 'l':
			l.redraw()
		case 'r':
			l.refresh()
		}
		return
	}

	if k.Rune == 0 {
		return
	}

	if digit := string(k.Rune); len(digit) == 1 && digit[0] >= '0' && digit[0] <= '9' {
		l.cdBookmark(digit)
		return
	}

	switch k.Rune {
	case 'k':
		l.moveCursor(-1)
	case 'j':
		l.moveCursor(1)
	case 'g':
		l.scrollTop()
	case 'G':
		l.scrollBottom()
	case 'h':
		l.cdUp()
	case 'l', 'o':
		l.openCursorEntry()
	case ' ':
		l.toggleMark()
	case '.':
		l.toggleHidden()
	case 'v':
		l.cycleView()
	case 's':
		l.cycleSort()
	case '/':
		l.openSearchPrompt(false)
	case '?':
		l.openSearchPrompt(true)
	case ':':
		l.openCommandPrompt("")
	case 'r':
		l.openCommandPrompt(renameSeed(l.cursorName()))
	case 'y':
		l.copyPWD()
	case 'd':
		l.trashMarked()
	case 'q':
		l.quit(false)
	case 'Q':
		l.quit(true)
	}
}

// renameSeed is the initial command-prompt text for a rename-style
// binding: a shell mv template with the current name already in place so
// the user only has to edit the destination.
func renameSeed(name string) string {
	if name == "" {
		return ""
	}
	return "!mv " + shellQuote(name) + " " + shellQuote(name)
}

func shellQuote(s string) string {
	if !strings.ContainsAny(s, " \t'\"$`\\!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
