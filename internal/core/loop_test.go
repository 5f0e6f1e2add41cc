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

	"github.com/go-dfm/dfm/cfg"
	"github.com/go-dfm/dfm/clock"
	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/drawer"
	"github.com/go-dfm/dfm/internal/filter"
	"github.com/go-dfm/dfm/internal/lookup"
	"github.com/go-dfm/dfm/internal/marks"
	"github.com/go-dfm/dfm/internal/readline"
)

// newTestLoop builds a Loop with a fixed set of plain-file entries, bypassing
// New (which needs a real tty, watch pump, and executable path): every test
// in this package drives the arena/filter/marks/readline pieces directly,
// the same components New wires together.
func newTestLoop(t *testing.T, names ...string) *Loop {
	t.Helper()

	table := lookup.New(64)
	l := &Loop{
		cfg:        &cfg.Config{},
		clock:      clock.RealClock{},
		table:      table,
		drawer:     drawer.New(table),
		dir:        arena.NewDir(1 << 16),
		visible:    filter.New(0),
		marks:      marks.New(0),
		editor:     readline.New("", 80),
		cwd:        "/fake",
		sortMode:   cfg.SortNatural,
		viewMode:   cfg.ViewName,
		cols:       80,
		rows:       25,
		dirRows:    24,
		cursorIdx:  -1,
		cursorRank: -1,
	}

	for _, name := range names {
		if err := l.dir.AddEntry(name, arena.Physical{Type: arena.TypeRegular}, ""); err != nil {
			t.Fatalf("AddEntry(%q): %v", name, err)
		}
	}
	l.sortAndFilter()
	l.rebuildLookupTable()
	l.resetCursor()
	return l
}
