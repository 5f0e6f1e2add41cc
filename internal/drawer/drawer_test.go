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

package drawer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-dfm/dfm/cfg"
	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/bitset"
	"github.com/go-dfm/dfm/internal/lookup"
	"github.com/go-dfm/dfm/internal/marks"
)

func newFixtureDir(t *testing.T) *arena.Dir {
	t.Helper()
	d := arena.NewDir(256)
	require.NoError(t, d.AddEntry("alpha", arena.Physical{Type: arena.TypeDir, Size: arena.EncodeSize(0)}, ""))
	require.NoError(t, d.AddEntry("run.sh", arena.Physical{Type: arena.TypeRegularExecutable, Perm: 0o755, Size: arena.EncodeSize(4096)}, ""))
	require.NoError(t, d.AddEntry("link", arena.Physical{Type: arena.TypeLink}, "target.txt"))
	return d
}

func fullVisible(n int) *bitset.Set {
	v := bitset.New(n)
	for i := 0; i < n; i++ {
		v.Set(i, true)
	}
	v.Rebuild()
	return v
}

func TestBeginEndWrapSynchronizedUpdate(t *testing.T) {
	var buf bytes.Buffer
	Begin(&buf)
	buf.WriteString("frame")
	End(&buf)

	out := buf.String()
	assert.Equal(t, syncBegin+"frame"+syncEnd, out)
}

func TestDrawDirectoryColorsDirectoriesAndMarksCursorRow(t *testing.T) {
	d := newFixtureDir(t)
	vis := fullVisible(d.Len())
	mk := marks.New(d.Len())

	dr := New(lookup.New(16))
	var buf bytes.Buffer
	dr.DrawDirectory(&buf, d, vis, mk, cfg.ViewName, 0, 0, 3, 40)

	out := buf.String()
	assert.Contains(t, out, typeColor(arena.TypeDir))
	assert.Contains(t, out, cursorSGR)
	assert.Contains(t, out, "alpha/")
}

func TestDrawDirectoryShowsMarkPrefixForMarkedEntry(t *testing.T) {
	d := newFixtureDir(t)
	vis := fullVisible(d.Len())
	mk := marks.New(d.Len())
	mk.Toggle("/tmp", d, 1, vis)

	dr := New(lookup.New(16))
	var buf bytes.Buffer
	dr.DrawDirectory(&buf, d, vis, mk, cfg.ViewName, 0, -1, 3, 40)

	assert.Contains(t, buf.String(), markColor)
}

func TestDrawDirectoryRendersSymlinkTarget(t *testing.T) {
	d := newFixtureDir(t)
	vis := fullVisible(d.Len())
	mk := marks.New(d.Len())

	dr := New(lookup.New(16))
	var buf bytes.Buffer
	dr.DrawDirectory(&buf, d, vis, mk, cfg.ViewName, 0, -1, 3, 60)

	assert.Contains(t, buf.String(), "-> target.txt")
}

func TestTruncateNarrowAddsEllipsisWhenOverBudget(t *testing.T) {
	got := truncNarrow("a-very-long-filename.txt", 10)
	total := 0
	for _, r := range got {
		total += runeCols(r)
	}
	assert.LessOrEqual(t, total, 10)
	assert.Contains(t, got, "…")
}

func TestTruncateWideAccountsForDoubleWidthRunes(t *testing.T) {
	name := "日本語ファイル名.txt"
	got := truncWide(name, 8)
	total := 0
	for _, r := range got {
		total += runeCols(r)
	}
	assert.LessOrEqual(t, total, 8)
}

func TestRenderNameMemoizesInLookupTable(t *testing.T) {
	table := lookup.New(16)
	first := renderName(table, "some-long-name.txt", 6, 'n', false)
	cached, ok := table.CacheGet("some-long-name.txt", 6, 'n')
	require.True(t, ok)
	assert.Equal(t, first, cached)
}

func TestFormatPermRendersRWXAndSpecialBits(t *testing.T) {
	assert.Equal(t, "rwxr-xr-x", formatPerm(0o755))
	assert.Equal(t, "rwsr-xr-x", formatPerm(0o755|1<<11))
}

func TestFormatSizeUsesShortSuffixes(t *testing.T) {
	assert.Equal(t, "512B", formatSize(512))
	assert.Equal(t, "1.0K", formatSize(1024))
}

func TestFormatSizeDropsFractionOnceIntegerPartIsDoubleDigit(t *testing.T) {
	assert.Equal(t, "12K", formatSize(12*1024))
	assert.Equal(t, "9.5K", formatSize(9*1024+512))
}

func TestDrawNavBarIncludesCwdAndStatusFlags(t *testing.T) {
	var buf bytes.Buffer
	DrawNavBar(&buf, 24, 80, 0, 5, StatusFlags{Hidden: true}, 4096, "/tmp/x", SearchQuery{})
	out := buf.String()
	assert.Contains(t, out, "1/5")
	assert.Contains(t, out, "[---H]")
	assert.Contains(t, out, "/tmp/x")
}

func TestStatusFlagsStringUsesDashForClearedBits(t *testing.T) {
	f := StatusFlags{Root: true, Hidden: true}
	assert.Equal(t, "R--H", f.String())
}

func TestSearchQueryStringPrefixesSubstringWithAsterisk(t *testing.T) {
	assert.Equal(t, "/*foo", SearchQuery{Active: true, Substring: true, Text: "foo"}.String())
	assert.Equal(t, "/foo", SearchQuery{Active: true, Text: "foo"}.String())
	assert.Equal(t, "", SearchQuery{}.String())
}

func TestScrollCursorMoveRepaintsOnlyTwoRows(t *testing.T) {
	d := newFixtureDir(t)
	vis := fullVisible(d.Len())
	mk := marks.New(d.Len())

	dr := New(lookup.New(16))
	var buf bytes.Buffer
	dr.ScrollCursorMove(&buf, d, vis, mk, cfg.ViewName, 0, 1, 40)

	out := buf.String()
	assert.Contains(t, out, lineFeed)
	assert.Contains(t, out, cursorSGR)
}
