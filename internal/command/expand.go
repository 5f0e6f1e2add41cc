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
	"errors"
	"fmt"
	"strings"
)

// ErrEnvUnset is wrapped into the error returned when a "$NAME" token
// expands against an environment variable that is unset or empty.
var ErrEnvUnset = errors.New("command: environment variable unset")

// ExpandContext supplies the values a template's tokens substitute to.
type ExpandContext struct {
	Dir       string
	Cursor    string   // the entry under the cursor, for %f
	Marks     []string // the operand set for %m; falls back to Cursor when empty
	LookupEnv func(name string) (string, bool)
}

func expandToken(tok string, ctx ExpandContext) ([]string, error) {
	switch {
	case tok == "%d":
		return []string{ctx.Dir}, nil
	case tok == "%f":
		return []string{ctx.Cursor}, nil
	case tok == "%m":
		if len(ctx.Marks) == 0 {
			return []string{ctx.Cursor}, nil
		}
		return ctx.Marks, nil
	case strings.HasPrefix(tok, "$"):
		name := tok[1:]
		val, ok := ctx.LookupEnv(name)
		if !ok || val == "" {
			return nil, fmt.Errorf("%w: %s", ErrEnvUnset, name)
		}
		return []string{val}, nil
	default:
		return []string{tok}, nil
	}
}

// BuildArgv expands every token against ctx into a flat argv. A %m that
// expands to several names contributes several argv elements.
func BuildArgv(tokens []string, ctx ExpandContext) ([]string, error) {
	var argv []string
	for _, tok := range tokens {
		expanded, err := expandToken(tok, ctx)
		if err != nil {
			return nil, err
		}
		argv = append(argv, expanded...)
	}
	return argv, nil
}

// BuildShellText expands every token against ctx the same way BuildArgv
// does, but joins each token's expansion with spaces into a single shell
// command string (used for "!"-prefixed templates, which hand the whole
// line to `$SHELL -c`).
func BuildShellText(tokens []string, ctx ExpandContext) (string, error) {
	var parts []string
	for _, tok := range tokens {
		expanded, err := expandToken(tok, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.Join(expanded, " "))
	}
	return strings.Join(parts, " "), nil
}

// BuildShellArgv assembles the argv for a "!"-prefixed template per the
// spec: [shell, -c, cmd, program-name, optional-cursor-file].
func BuildShellArgv(shell, cmd, programName string, cursorFile string, hasCursorFile bool) []string {
	argv := []string{shell, "-c", cmd, programName}
	if hasCursorFile {
		argv = append(argv, cursorFile)
	}
	return argv
}

// ExpandAll builds the one or more argvs a mode requires: Single and
// Bulk/Chunk each run once; Each and Virtual run once per operand (the
// marks, or just the cursor when there are none).
func (t *Template) ExpandAll(mode Mode, ctx ExpandContext) ([][]string, error) {
	build := func(cursor string, marks []string) ([]string, error) {
		c := ctx
		c.Cursor = cursor
		c.Marks = marks
		return BuildArgv(t.Tokens, c)
	}

	switch mode {
	case Single:
		argv, err := build(ctx.Cursor, nil)
		if err != nil {
			return nil, err
		}
		return [][]string{argv}, nil

	case Bulk, Chunk:
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
		return nil, fmt.Errorf("command: unknown mode %d", mode)
	}
}
