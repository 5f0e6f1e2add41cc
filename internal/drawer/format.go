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

import "fmt"

// formatPerm renders the low 12 bits of a Unix permission word as the
// familiar 9-character rwx string, overlaying setuid/setgid/sticky onto
// the executable-bit positions the way `ls -l` does.
func formatPerm(perm uint16) string {
	const (
		setuid = 1 << 11
		setgid = 1 << 10
		sticky = 1 << 9
	)
	b := [9]byte{}
	groups := [3]struct {
		read, write, exec uint16
	}{
		{1 << 8, 1 << 7, 1 << 6},
		{1 << 5, 1 << 4, 1 << 3},
		{1 << 2, 1 << 1, 1 << 0},
	}
	for i, g := range groups {
		off := i * 3
		if perm&g.read != 0 {
			b[off] = 'r'
		} else {
			b[off] = '-'
		}
		if perm&g.write != 0 {
			b[off+1] = 'w'
		} else {
			b[off+1] = '-'
		}
		b[off+2] = execChar(perm&g.exec != 0, i, perm, setuid, setgid, sticky)
	}
	return string(b[:])
}

func execChar(exec bool, group int, perm uint16, setuid, setgid, sticky uint16) byte {
	var special, specialUpper byte
	switch group {
	case 0:
		special, specialUpper = 's', 'S'
		if perm&setuid == 0 {
			special, specialUpper = 0, 0
		}
	case 1:
		special, specialUpper = 's', 'S'
		if perm&setgid == 0 {
			special, specialUpper = 0, 0
		}
	case 2:
		special, specialUpper = 't', 'T'
		if perm&sticky == 0 {
			special, specialUpper = 0, 0
		}
	}
	switch {
	case special != 0 && exec:
		return special
	case special != 0:
		return specialUpper
	case exec:
		return 'x'
	default:
		return '-'
	}
}

// formatSize renders a byte count in the short K/M/G/T/P/E suffix form used by
// both the per-row size column and the nav bar's running total. Following
// ent_size_decode, the fractional digit only appears when the unit is above
// bytes and the integer part is still a single digit (e.g. "1.0K" but "12K",
// not "12.0K").
func formatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := "KMGTPE"
	whole := bytes / div
	if whole < 10 {
		return fmt.Sprintf("%.1f%c", float64(bytes)/float64(div), suffixes[exp])
	}
	return fmt.Sprintf("%d%c", whole, suffixes[exp])
}
