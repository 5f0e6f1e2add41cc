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

package command

import (
	"os"

	"github.com/go-dfm/dfm/internal/spawn"
)

// RunOptions bundles what Run needs beyond the template and its mode's
// argvs: the shell to delegate "!" templates to, the foreground tty
// (stdout/stderr, handed to cooked mode around each foreground spawn), a
// null-device fd for background commands, and the controller that flips
// the tty between raw and cooked.
type RunOptions struct {
	Shell       string
	ProgramName string
	TTY         *os.File
	DevNull     *os.File
	Controller  spawn.TTYController
	Stdin       *os.File // non-nil only for a "<"-redirected single command
}

// Invocations expands a template's mode into the concrete argv(s) to run,
// wrapping each one for `$SHELL -c` when the template was "!"-prefixed.
// hasFileCursor mirrors the %f presence check used for mode selection: a
// shell invocation appends the cursor path as a trailing argument only
// when the template actually referenced %f.
func (t *Template) Invocations(mode Mode, ctx ExpandContext, shell, programName string) ([][]string, error) {
	if !t.Shell {
		return t.ExpandAll(mode, ctx)
	}

	hasFileCursor := hasToken(t.Tokens, "%f")
	build := func(cursor string, marks []string) ([]string, error) {
		c := ctx
		c.Cursor = cursor
		c.Marks = marks
		text, err := BuildShellText(t.Tokens, c)
		if err != nil {
			return nil, err
		}
		return BuildShellArgv(shell, text, programName, cursor, hasFileCursor), nil
	}

	switch mode {
	case Single, Bulk, Chunk:
		argv, err := build(ctx.Cursor, ctx.Marks)
		if err != nil {
			return nil, err
		}
		return [][]string{argv}, nil
	case Each, Virtual:
		names := ctx.Marks
		if len(names) == 0 {
			names = []string{ctx.Cursor}
		}
		out := make([][]string, 0, len(names))
		for _, n := range names {
			argv, err := build(n, []string{n})
			if err != nil {
				return nil, err
			}
			out = append(out, argv)
		}
		return out, nil
	default:
		return t.ExpandAll(mode, ctx)
	}
}

// Run executes every argv in order, stopping at the first non-success
// classification. A background template ("&") spawns every argv without
// waiting and reports Success immediately; the caller reaps the returned
// Background handles later via their WaitAsync channel.
func Run(t *Template, argvs [][]string, opts RunOptions) (spawn.Classification, []*spawn.Background, error) {
	var background []*spawn.Background

	for _, argv := range argvs {
		if len(argv) == 0 {
			continue
		}

		req := spawn.Request{Argv: argv, Stdin: opts.Stdin}
		if t.Background {
			req.Stdout, req.Stderr = opts.DevNull, opts.DevNull
			bg, err := spawn.StartBackground(req)
			if err != nil {
				return spawn.Failed, background, err
			}
			background = append(background, bg)
			continue
		}

		req.Stdout, req.Stderr = opts.TTY, opts.TTY
		if c := spawn.RunForeground(req, opts.Controller); c != spawn.Success {
			return c, background, nil
		}
	}
	return spawn.Success, background, nil
}
