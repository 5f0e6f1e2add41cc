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
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-dfm/dfm/internal/drawer"
	"github.com/go-dfm/dfm/internal/term"
)

// pollInterval bounds how long one idle iteration of Run blocks for the
// first byte of the next key: short enough that a SIGWINCH or a
// watch-pump/background-process change is noticed promptly, without
// busy-spinning the way a zero-timeout poll would.
const pollInterval = 60 * time.Millisecond

// readByte adapts term.ReadByte to keycode.ReadByteFunc: an inter-byte
// read (nonzero timeout, used mid-escape-sequence) passes straight
// through, while the decoder's blocking "wait for the next key" read
// (timeout==0) is remapped to repeated short polls so Run's own loop gets
// a chance to reap background children, drain the watch pump, and notice
// a terminal resize between keystrokes.
func (l *Loop) readByte(timeout time.Duration) (byte, error) {
	if timeout == 0 {
		return l.term.ReadByte(pollInterval)
	}
	return l.term.ReadByte(timeout)
}

// Run is fm_run: the event loop that alternates update, draw, and a wait
// for either a key or a resize, until quit is requested or the terminal
// session dies.
func (l *Loop) Run() error {
	resized := make(chan os.Signal, 1)
	signal.Notify(resized, syscall.SIGWINCH)
	defer signal.Stop(resized)

	drawer.EnterScreen(l.term.File(), l.rows)
	defer drawer.LeaveScreen(l.term.File())

	for !l.exitRequested {
		l.update()
		l.draw()

		select {
		case <-resized:
			l.handleResize()
			continue
		default:
		}

		ev, err := l.decoder.Next()
		if err != nil {
			if errors.Is(err, term.ErrTimeout) {
				continue
			}
			return fmt.Errorf("core: read input: %w", err)
		}
		l.dispatchKey(ev)
	}

	if l.flags.has(flagPrintPWD) || l.flags.has(flagPicker) {
		target := l.cwd
		if l.pickedPath != "" {
			target = l.pickedPath
		}
		fmt.Fprintln(os.Stdout, target)
	}
	return l.exitErr
}

// handleResize re-reads the terminal size and forces a full repaint,
// re-establishing the scrolling region the new row count implies.
func (l *Loop) handleResize() {
	cols, rows, err := l.term.Size()
	if err != nil {
		return
	}
	l.cols, l.rows = cols, rows
	l.dirRows = max(rows-1, 0)
	l.editor.SetViewportWidth(max(cols-len(l.promptLabel()), 1))
	drawer.EnterScreen(l.term.File(), rows)
	if l.firstRank > 0 && l.cursorRank-l.firstRank >= l.dirRows {
		l.firstRank = l.cursorRank - l.dirRows + 1
		if l.firstRank < 0 {
			l.firstRank = 0
		}
	}
	l.flags.set(flagRedrawAll)
}
