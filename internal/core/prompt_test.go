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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptLabel(t *testing.T) {
	l := newTestLoop(t)

	assert.Equal(t, "", l.promptLabel())

	l.openCommandPrompt("")
	assert.Equal(t, ":", l.promptLabel())

	l.openSearchPrompt(false)
	assert.Equal(t, "/", l.promptLabel())

	l.openSearchPrompt(true)
	assert.Equal(t, "/*", l.promptLabel())
}

func TestOpenCommandPromptSeedsEditor(t *testing.T) {
	l := newTestLoop(t)
	l.openCommandPrompt("!mv a a")
	assert.Equal(t, promptCommand, l.prompt)
	assert.Equal(t, "!mv a a", l.editor.Text())
}

func TestShellFallsBackToBinSh(t *testing.T) {
	l := newTestLoop(t)
	assert.Equal(t, "/bin/sh", l.shell())

	l.cfg.Shell = "/bin/zsh"
	assert.Equal(t, "/bin/zsh", l.shell())
}

func TestOnSearchKeystrokeNarrowsVisible(t *testing.T) {
	l := newTestLoop(t, "alpha", "apple", "bravo")
	l.openSearchPrompt(false)

	l.editor.Insert("a")
	l.onSearchKeystroke(true)
	assert.Equal(t, 2, l.visible.Bits().PopCount())

	l.editor.Insert("l")
	l.onSearchKeystroke(true)
	assert.Equal(t, 1, l.visible.Bits().PopCount())
}

func TestSubmitSearchResetsPrompt(t *testing.T) {
	l := newTestLoop(t, "alpha", "bravo")
	l.openSearchPrompt(false)
	l.editor.Insert("bravo")
	l.onSearchKeystroke(true)

	l.submitSearch()
	assert.Equal(t, promptNone, l.prompt)
	assert.Equal(t, "", l.editor.Text())
}

func TestCommandExpandContextUsesCursorAndMarks(t *testing.T) {
	l := newTestLoop(t, "alpha", "bravo")
	ctx := l.commandExpandContext()
	assert.Equal(t, l.cwd, ctx.Dir)
	assert.Equal(t, "alpha", ctx.Cursor)
	assert.Empty(t, ctx.Marks)
}
