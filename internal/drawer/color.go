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

import "github.com/go-dfm/dfm/internal/arena"

// typeColor returns the SGR escape used to color a row by its file type.
// Regular, non-executable files get no color (an empty string — the
// caller skips emitting an escape at all rather than writing a no-op
// reset/set pair).
func typeColor(t arena.FileType) string {
	switch t {
	case arena.TypeDir:
		return "\x1b[1;34m"
	case arena.TypeLinkDir:
		return "\x1b[1;36m"
	case arena.TypeLink:
		return "\x1b[36m"
	case arena.TypeBrokenLink:
		return "\x1b[31m"
	case arena.TypeRegularExecutable:
		return "\x1b[1;32m"
	case arena.TypeFifo, arena.TypeSock:
		return "\x1b[33m"
	case arena.TypeSpecial:
		return "\x1b[1;33m"
	default:
		return ""
	}
}

// markColor highlights a marked row's prefix distinctly from its type
// color so a marked directory and a marked regular file remain visually
// distinct from an unmarked one of the same type.
const markColor = "\x1b[1;35m"

// cursorSGR is the reverse-video attribute applied to the cursor row.
const cursorSGR = "\x1b[7m"
