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

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-dfm/dfm/internal/arena"
)

func buildDir(t *testing.T, names []string) *arena.Dir {
	t.Helper()
	d := arena.NewDir(4096)
	for _, n := range names {
		require.NoError(t, d.AddEntry(n, arena.Physical{Type: arena.TypeRegular}, ""))
	}
	return d
}

func TestApplyHidesDotFilesByDefault(t *testing.T) {
	d := buildDir(t, []string{"README.md", ".bashrc"})
	v := New(d.Len())

	Apply(d, v, Options{ShowHidden: false})

	assert.True(t, d.Entries[0].Visible)
	assert.False(t, d.Entries[1].Visible)
	assert.Equal(t, 1, v.Bits().PopCount())
}

func TestApplyShowsHiddenWhenToggled(t *testing.T) {
	d := buildDir(t, []string{"README.md", ".bashrc"})
	v := New(d.Len())

	Apply(d, v, Options{ShowHidden: true})

	assert.True(t, d.Entries[1].Visible)
	assert.Equal(t, 2, v.Bits().PopCount())
}

func TestApplyPrefixQuery(t *testing.T) {
	d := buildDir(t, []string{"foo.go", "bar.go", "food.txt"})
	v := New(d.Len())

	Apply(d, v, Options{ShowHidden: true, Query: Query{Mode: ModePrefix, Left: "foo"}})

	assert.True(t, d.Entries[0].Visible)
	assert.False(t, d.Entries[1].Visible)
	assert.True(t, d.Entries[2].Visible)
}

func TestApplySubstringQuery(t *testing.T) {
	d := buildDir(t, []string{"foo.go", "bar.go"})
	v := New(d.Len())

	Apply(d, v, Options{ShowHidden: true, Query: Query{Mode: ModeSubstring, Left: "o.g"}})

	assert.True(t, d.Entries[0].Visible)
	assert.False(t, d.Entries[1].Visible)
}

func TestApplyExcludesTombstonedEntries(t *testing.T) {
	d := buildDir(t, []string{"a", "b"})
	d.Entries[0].Tombstone = true
	v := New(d.Len())

	Apply(d, v, Options{ShowHidden: true})

	assert.False(t, d.Entries[0].Visible)
	assert.True(t, d.Entries[1].Visible)
}

func TestApplyIncrementalNarrowsWithoutRescanningExcluded(t *testing.T) {
	d := buildDir(t, []string{"foobar", "foobaz", "other"})
	v := New(d.Len())
	Apply(d, v, Options{ShowHidden: true, Query: Query{Mode: ModePrefix, Left: "foo"}})
	require.Equal(t, 2, v.Bits().PopCount())

	ApplyIncremental(d, v, Options{ShowHidden: true, Query: Query{Mode: ModePrefix, Left: "fooba", Right: "r"}})

	assert.True(t, d.Entries[0].Visible)
	assert.False(t, d.Entries[1].Visible)
	assert.False(t, d.Entries[2].Visible, "previously excluded entries stay excluded")
}

func TestApplyIncrementalFallsBackToFullApplyOnSizeMismatch(t *testing.T) {
	d := buildDir(t, []string{"a"})
	v := New(0)

	ApplyIncremental(d, v, Options{ShowHidden: true})

	assert.Equal(t, 1, v.Bits().PopCount())
}
