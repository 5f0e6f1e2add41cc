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
	"strings"

	"golang.org/x/text/width"

	"github.com/go-dfm/dfm/internal/lookup"
)

// runeCols returns r's terminal column width: 2 for East-Asian wide/
// fullwidth runes, 1 otherwise.
func runeCols(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// truncNarrow truncates an ASCII-only name to at most cols columns — the
// fast path, one byte per column, no rune decoding needed.
func truncNarrow(name string, cols int) string {
	if len(name) <= cols {
		return name
	}
	if cols <= 1 {
		return name[:max(cols, 0)]
	}
	return name[:cols-1] + "…"
}

// truncWide truncates a name that may contain multi-byte or wide runes to
// at most cols display columns, accounting for each rune's actual width.
func truncWide(name string, cols int) string {
	total := 0
	for _, r := range name {
		total += runeCols(r)
	}
	if total <= cols {
		return name
	}

	budget := cols - 1 // reserve one column for the ellipsis
	var b strings.Builder
	used := 0
	for _, r := range name {
		w := runeCols(r)
		if used+w > budget {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteRune('…')
	return b.String()
}

// max avoids importing a generics-only helper package for one comparison.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// renderName truncates name to cols columns, using the narrow path when
// it is pure ASCII and the wide path otherwise, memoizing the result in
// the shared lookup table keyed by (name, cols, view) so repeated frames
// at an unchanged width don't re-measure rune widths every draw.
func renderName(table *lookup.Table, name string, cols int, view byte, containsMultibyte bool) string {
	if cached, ok := table.CacheGet(name, cols, view); ok {
		return cached
	}
	var rendered string
	if containsMultibyte {
		rendered = truncWide(name, cols)
	} else {
		rendered = truncNarrow(name, cols)
	}
	table.CachePut(name, cols, view, rendered)
	return rendered
}
