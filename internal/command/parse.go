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

// Package command parses a whitespace-separated command template (the
// text the user types at the command prompt, or a bound key's configured
// action) into argv substitution tokens, picks one of five execution modes
// based on which tokens are present and the current mark state, and
// builds the concrete argv(s) to hand to internal/spawn.
package command

import "strings"

// Mode is one of the five execution strategies a template can resolve to.
type Mode int

const (
	// Single runs the command once against the cursor entry (or no
	// operand at all).
	Single Mode = iota
	// Chunk (mark-dir matches cwd) runs the command once with every live
	// mark name substituted for %m, as Bulk does; it does not split the
	// marks into chunks and does not clear them.
	Chunk
	// Bulk runs the command once with every persisted mark name
	// substituted for %m (mark-dir does not match cwd, so a chunk-and-
	// clear strategy isn't available).
	Bulk
	// Each runs the command once per operand, iterating the persisted
	// mark list (or just the cursor entry, if there are no marks).
	Each
	// Virtual is like Each but iterates the live in-directory marks
	// directly rather than the persisted list, since mark-dir matches
	// cwd and no re-materialization is needed.
	Virtual
)

// Template is a parsed command string.
type Template struct {
	Raw           string
	Background    bool // trailing lone "&"
	StdinRedirect bool // leading "<"
	Shell         bool // leading "!"
	Tokens        []string
}

// Parse splits raw into a Template. It never fails: an empty or
// whitespace-only template parses to an empty token list.
func Parse(raw string) *Template {
	t := &Template{Raw: raw}

	s := strings.TrimSpace(raw)
	if rest, ok := trimTrailingAmpersand(s); ok {
		t.Background = true
		s = rest
	}
	if strings.HasPrefix(s, "!") {
		t.Shell = true
		s = s[1:]
	} else if strings.HasPrefix(s, "<") {
		t.StdinRedirect = true
		s = s[1:]
	}
	t.Tokens = strings.Fields(s)
	return t
}

func trimTrailingAmpersand(s string) (string, bool) {
	if s == "&" {
		return "", true
	}
	if strings.HasSuffix(s, " &") {
		return strings.TrimSuffix(s, " &"), true
	}
	return s, false
}

func hasToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}

// DetermineMode implements the spec's mode-selection table. fileCursor is
// the FILE_CURSOR flag (set when the bound action targets the cursor entry
// specifically, forcing single mode even in the presence of %f); vml is
// the marked-and-visible count; markPWD reports whether the mark
// directory equals cwd.
func DetermineMode(t *Template, fileCursor bool, vml int, markPWD bool) Mode {
	hasF := hasToken(t.Tokens, "%f")
	hasM := hasToken(t.Tokens, "%m")

	switch {
	case t.StdinRedirect || (hasF && fileCursor):
		return Single
	case hasM && vml > 0:
		if markPWD {
			return Chunk
		}
		return Bulk
	case hasM:
		return Each
	case hasF && markPWD:
		return Virtual
	case hasF:
		return Each
	default:
		return Single
	}
}
