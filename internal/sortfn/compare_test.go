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

package sortfn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-dfm/dfm/cfg"
)

func TestNaturalOrdersDigitRunsNumerically(t *testing.T) {
	assert.Less(t, Natural("file2", "file10"), 0)
	assert.Less(t, Natural("file02", "file10"), 0)
	assert.Less(t, Natural("file02", "file2"), 0, "more leading zeros sorts first on numeric ties")
	assert.Equal(t, 0, Natural("abc", "abc"))
	assert.Greater(t, Natural("file10", "file2"), 0)
}

func TestByNamePutsDirectoriesFirst(t *testing.T) {
	dir := Item{IsDir: true, Name: "zzz"}
	file := Item{IsDir: false, Name: "aaa"}
	assert.Less(t, byName(dir, file), 0)
	assert.Greater(t, byName(file, dir), 0)
}

func TestByExtensionGroupsByExtensionThenName(t *testing.T) {
	a := Item{Name: "b.txt"}
	b := Item{Name: "a.md"}
	assert.Greater(t, byExtension(a, b), 0, "txt sorts after md")

	c := Item{Name: "noext"}
	assert.Less(t, byExtension(c, a), 0, "no extension sorts before any extension")
}

func TestBySizeOrdersNumericallyThenByName(t *testing.T) {
	small := Item{Name: "b", Size: 1}
	big := Item{Name: "a", Size: 2}
	assert.Less(t, bySize(small, big), 0)

	tieA := Item{Name: "a", Size: 5}
	tieB := Item{Name: "b", Size: 5}
	assert.Less(t, bySize(tieA, tieB), 0)
}

func TestByDateOrdersNumericallyThenByName(t *testing.T) {
	older := Item{Name: "b", Date: 1}
	newer := Item{Name: "a", Date: 2}
	assert.Less(t, byDate(older, newer), 0)
}

func TestReversedNegatesComparator(t *testing.T) {
	a := Item{Name: "a"}
	b := Item{Name: "b"}
	forward := byName(a, b)
	assert.Equal(t, -forward, reversed(byName)(a, b))
}

func TestForSelectsComparatorByMode(t *testing.T) {
	assert.Less(t, For(cfg.SortNatural)(Item{Name: "a"}, Item{Name: "b"}), 0)
	assert.Greater(t, For(cfg.SortNaturalReversed)(Item{Name: "a"}, Item{Name: "b"}), 0)
	assert.NotNil(t, For(cfg.SortMode("bogus")))
}
