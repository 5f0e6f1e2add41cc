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

// Package term owns the controlling tty file descriptor: acquiring it
// (preferring stdin when it's a tty, else /dev/tty), flipping it between
// raw and cooked mode, and reading its current size. It implements
// internal/spawn's TTYController so the command executor can hand the
// terminal to a foreground child without importing this package's
// concrete type.
package term

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal owns the acquired tty fd and its saved cooked-mode state.
type Terminal struct {
	f        *os.File
	ownsFile bool
	cookedFd int
	saved    *term.State
	raw      bool
}

// Open acquires the controlling tty: stdin if it's a terminal, otherwise
// /dev/tty. The returned Terminal starts in cooked mode.
func Open() (*Terminal, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return &Terminal{f: os.Stdin, cookedFd: int(os.Stdin.Fd())}, nil
	}
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("term: no controlling tty available: %w", err)
	}
	return &Terminal{f: f, ownsFile: true, cookedFd: int(f.Fd())}, nil
}

// File returns the underlying *os.File, handed to children via dup2 by
// the spawn primitive (os/exec does this itself when the file is set as
// Stdout/Stderr/Stdin).
func (t *Terminal) File() *os.File { return t.f }

// Raw puts the tty into raw mode, saving the previous state so Cook can
// restore it. A no-op if already raw.
func (t *Terminal) Raw() error {
	if t.raw {
		return nil
	}
	state, err := term.MakeRaw(t.cookedFd)
	if err != nil {
		return fmt.Errorf("term: enter raw mode: %w", err)
	}
	t.saved = state
	t.raw = true
	return nil
}

// Cook restores cooked mode if the tty is currently raw. A no-op
// otherwise — safe to call defensively, e.g. from a signal handler.
func (t *Terminal) Cook() error {
	if !t.raw || t.saved == nil {
		return nil
	}
	if err := term.Restore(t.cookedFd, t.saved); err != nil {
		return fmt.Errorf("term: restore cooked mode: %w", err)
	}
	t.raw = false
	return nil
}

// Size returns the terminal's current (columns, rows).
func (t *Terminal) Size() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(t.cookedFd)
	if err != nil {
		return 0, 0, fmt.Errorf("term: get size: %w", err)
	}
	return cols, rows, nil
}

// Close restores cooked mode and releases the tty fd if this Terminal
// opened /dev/tty itself (stdin is never closed).
func (t *Terminal) Close() error {
	_ = t.Cook()
	if t.ownsFile {
		return t.f.Close()
	}
	return nil
}
