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
	"io"
	"strings"

	"github.com/go-dfm/dfm/cfg"
	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/bitset"
	"github.com/go-dfm/dfm/internal/lookup"
	"github.com/go-dfm/dfm/internal/marks"
)

// Drawer owns the render-cache table shared across frames; it holds no
// output-buffer state of its own, since every draw call writes straight
// to the io.Writer the core passes in (the terminal fd's cooked write
// buffer).
type Drawer struct {
	Table *lookup.Table
}

// New returns a Drawer backed by table for the truncated-name render
// cache (the same table the mark subsystem uses for name→index lookup,
// per the spec's shared-hash-table design).
func New(table *lookup.Table) *Drawer {
	return &Drawer{Table: table}
}

func viewByte(v cfg.ViewMode) byte {
	if len(v) == 0 {
		return 'n'
	}
	return v[0]
}

// columnWidths returns the fixed-width metadata columns this view mode
// draws before the name, in display order.
func columnWidths(v cfg.ViewMode) (size, perm, mtime int) {
	switch v {
	case cfg.ViewSize:
		return 7, 0, 0
	case cfg.ViewPermission:
		return 0, 9, 0
	case cfg.ViewTime:
		return 0, 0, 6
	case cfg.ViewAll:
		return 7, 9, 6
	default: // cfg.ViewName
		return 0, 0, 0
	}
}

// rowText renders one directory entry's full row content (everything
// after the cursor-column positioning), truncating the name to fit
// whatever columns remain.
func (dr *Drawer) rowText(d *arena.Dir, idx int, marked bool, view cfg.ViewMode, cols int) string {
	p := d.Physicals[idx]
	sizeW, permW, mtimeW := columnWidths(view)

	var b strings.Builder
	color := typeColor(p.Type)
	if color != "" {
		b.WriteString(color)
	}

	if sizeW > 0 {
		b.WriteString(padRight(formatSize(arena.DecodeSize(p.Size)), sizeW))
		b.WriteByte(' ')
	}
	if permW > 0 {
		b.WriteString(formatPerm(p.Perm))
		b.WriteByte(' ')
	}
	if mtimeW > 0 {
		b.WriteString(padRight(padLeftAge(p.MtimeLog), mtimeW))
		b.WriteByte(' ')
	}

	prefixLen := b.Len()
	if color != "" {
		prefixLen -= len(color)
	}

	if marked {
		b.WriteString(markColor)
		b.WriteByte('*')
		if color != "" {
			b.WriteString(color)
		} else {
			b.WriteString(sgrReset)
		}
	} else {
		b.WriteByte(' ')
	}
	prefixLen++ // mark column

	trailer := trailerFor(p.Type)
	linkSuffix := ""
	if p.Type == arena.TypeLink || p.Type == arena.TypeBrokenLink {
		target := d.Links[idx]
		if target == "" {
			linkSuffix = " -> ?"
		} else {
			linkSuffix = " -> " + target
		}
	}

	budget := cols - prefixLen - len(trailer) - len(linkSuffix)
	if budget < 1 {
		budget = 1
	}
	name := renderName(dr.Table, d.Name(idx), budget, viewByte(view), p.UTF8)
	b.WriteString(name)
	b.WriteString(trailer)
	b.WriteString(linkSuffix)
	if color != "" {
		b.WriteString(sgrReset)
	}
	return b.String()
}

func trailerFor(t arena.FileType) string {
	switch t {
	case arena.TypeDir, arena.TypeLinkDir:
		return "/"
	case arena.TypeRegularExecutable:
		return "*"
	default:
		return ""
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeftAge(bucket uint8) string {
	s := arena.FormatAgo(bucket)
	if len(s) >= 6 {
		return s[len(s)-6:]
	}
	return strings.Repeat(" ", 6-len(s)) + s
}

// DrawDirectory paints up to rows visible entries, starting at visible
// rank firstRank, one per terminal row starting at row 1. cursorRank (a
// rank among visible entries, or -1 if none) is drawn reverse-video.
func (dr *Drawer) DrawDirectory(w io.Writer, d *arena.Dir, vis *bitset.Set, mk *marks.Marks, view cfg.ViewMode, firstRank, cursorRank, rows, cols int) {
	for row := 0; row < rows; row++ {
		rank := firstRank + row
		io.WriteString(w, cup(row+1, 1))
		io.WriteString(w, eraseLine)

		idx, ok := vis.Select(rank)
		if !ok {
			continue
		}
		highlighted := rank == cursorRank
		if highlighted {
			io.WriteString(w, cursorSGR)
		}
		io.WriteString(w, dr.rowText(d, idx, mk.IsMarked(idx), view, cols))
		if highlighted {
			io.WriteString(w, sgrReset)
		}
	}
}

// ScrollCursorMove is the ±1-move fast path: repaint only the former and
// new cursor rows rather than the whole pane, then reposition the cursor
// with a bare line-feed or cursor-up instead of an absolute CUP, matching
// the spec's minimal-diff scroll.
func (dr *Drawer) ScrollCursorMove(w io.Writer, d *arena.Dir, vis *bitset.Set, mk *marks.Marks, view cfg.ViewMode, oldRank, newRank, cols int) {
	io.WriteString(w, cup(oldRank+1, 1))
	io.WriteString(w, eraseLine)
	if idx, ok := vis.Select(oldRank); ok {
		io.WriteString(w, dr.rowText(d, idx, mk.IsMarked(idx), view, cols))
	}

	switch newRank {
	case oldRank + 1:
		io.WriteString(w, lineFeed)
	case oldRank - 1:
		io.WriteString(w, "\r"+cursorUpOne)
	default:
		io.WriteString(w, cup(newRank+1, 1))
	}
	io.WriteString(w, eraseLine)
	if idx, ok := vis.Select(newRank); ok {
		io.WriteString(w, cursorSGR)
		io.WriteString(w, dr.rowText(d, idx, mk.IsMarked(idx), view, cols))
		io.WriteString(w, sgrReset)
	}
}
