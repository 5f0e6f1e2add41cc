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
	"fmt"
	"io"
	"strings"
)

// StatusFlags drives the nav bar's bracketed "[RsEH]" indicator: one
// letter per flag, shown uppercase-or-lowercase-as-literal when set and
// as a dash when clear.
type StatusFlags struct {
	Root   bool // at the filesystem root
	Search bool // a search query is active
	Error  bool // the last operation produced an error (MSG_ERR)
	Hidden bool // hidden files are currently shown
}

func (f StatusFlags) String() string {
	letter := func(set bool, ch byte) byte {
		if set {
			return ch
		}
		return '-'
	}
	return string([]byte{
		letter(f.Root, 'R'),
		letter(f.Search, 's'),
		letter(f.Error, 'E'),
		letter(f.Hidden, 'H'),
	})
}

// SearchQuery describes the optional query suffix on the nav bar: a
// leading "/" for a prefix query, "/*" for a substring one.
type SearchQuery struct {
	Active     bool
	Substring  bool
	Text       string
}

func (q SearchQuery) String() string {
	if !q.Active {
		return ""
	}
	if q.Substring {
		return "/*" + q.Text
	}
	return "/" + q.Text
}

// DrawNavBar renders the bottom status line: cursor position over visible
// count, status flags, total size of the visible set, cwd, and the
// optional search query suffix.
func DrawNavBar(w io.Writer, row, cols int, cursor, visibleCount int, flags StatusFlags, totalSize uint64, cwd string, query SearchQuery) {
	io.WriteString(w, cup(row, 1))
	io.WriteString(w, eraseLine)

	left := fmt.Sprintf("%d/%d [%s] %s %s", cursor+1, visibleCount, flags.String(), formatSize(totalSize), cwd)
	line := left + query.String()
	if len(line) > cols {
		line = line[:cols]
	} else if len(line) < cols {
		line += strings.Repeat(" ", cols-len(line))
	}
	io.WriteString(w, line)
}

// DrawMessage overlays a one-line message (or error, bold red)
// on the given row, used for the message/error buffer the spec calls out
// as overlaid one frame.
func DrawMessage(w io.Writer, row, cols int, text string, isError bool) {
	io.WriteString(w, cup(row, 1))
	io.WriteString(w, eraseLine)
	if isError {
		io.WriteString(w, "\x1b[1;31m")
	}
	if len(text) > cols {
		text = text[:cols]
	}
	io.WriteString(w, text)
	if isError {
		io.WriteString(w, sgrReset)
	}
}
