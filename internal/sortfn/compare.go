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

// Package sortfn implements the directory comparators (natural, extension,
// size, date, and their reversed variants) and the introsort that applies
// one of them to a directory's entry array.
package sortfn

import (
	"strings"

	"github.com/go-dfm/dfm/cfg"
)

// Item is everything a comparator needs: whether it names a directory, the
// name itself, and the two raw packed numeric fields size/date comparisons
// use.
type Item struct {
	IsDir bool
	Name  string
	Size  uint64
	Date  uint64
}

// Cmp is a three-way comparator: negative if a sorts before b, zero if
// equal, positive otherwise.
type Cmp func(a, b Item) int

// isDigit reports whether b is an ASCII digit.
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Natural compares two names the way a human expects: byte-by-byte with
// digit runs compared numerically (leading zeros
// stripped, run length first, then bytes; the run with more leading zeros
// sorts first among numeric ties).
func Natural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			startA, startB := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			runA, runB := a[startA:i], b[startB:j]
			trimA := strings.TrimLeft(runA, "0")
			trimB := strings.TrimLeft(runB, "0")
			if len(trimA) != len(trimB) {
				if len(trimA) < len(trimB) {
					return -1
				}
				return 1
			}
			if c := strings.Compare(trimA, trimB); c != 0 {
				return c
			}
			// Numerically equal: more leading zeros sorts first.
			zerosA, zerosB := len(runA)-len(trimA), len(runB)-len(trimB)
			if zerosA != zerosB {
				if zerosA > zerosB {
					return -1
				}
				return 1
			}
			continue
		}
		if ca != cb {
			return int(ca) - int(cb)
		}
		i++
		j++
	}
	return (len(a) - i) - (len(b) - j)
}

func extension(name string) (string, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return "", false
	}
	return name[idx+1:], true
}

func byName(a, b Item) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	da, na := isDigit(firstByte(a.Name)), a.Name
	db, nb := isDigit(firstByte(b.Name)), b.Name
	if da != db {
		if da {
			return -1
		}
		return 1
	}
	return Natural(na, nb)
}

func firstByte(s string) byte {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

func byExtension(a, b Item) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	extA, okA := extension(a.Name)
	extB, okB := extension(b.Name)
	if okA != okB {
		if !okA {
			return -1
		}
		return 1
	}
	if c := strings.Compare(extA, extB); c != 0 {
		return c
	}
	return Natural(a.Name, b.Name)
}

func bySize(a, b Item) int {
	switch {
	case a.Size < b.Size:
		return -1
	case a.Size > b.Size:
		return 1
	default:
		return Natural(a.Name, b.Name)
	}
}

func byDate(a, b Item) int {
	switch {
	case a.Date < b.Date:
		return -1
	case a.Date > b.Date:
		return 1
	default:
		return Natural(a.Name, b.Name)
	}
}

func reversed(c Cmp) Cmp {
	return func(a, b Item) int { return -c(a, b) }
}

// For returns the comparator bound to a sort mode.
func For(mode cfg.SortMode) Cmp {
	switch mode {
	case cfg.SortNatural:
		return byName
	case cfg.SortNaturalReversed:
		return reversed(byName)
	case cfg.SortExtension:
		return byExtension
	case cfg.SortSize:
		return bySize
	case cfg.SortSizeReversed:
		return reversed(bySize)
	case cfg.SortDate:
		return byDate
	case cfg.SortDateReversed:
		return reversed(byDate)
	default:
		return byName
	}
}
