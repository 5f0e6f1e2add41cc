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

package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetRoundTrips(t *testing.T) {
	s := New(130)
	s.Set(0, true)
	s.Set(63, true)
	s.Set(64, true)
	s.Set(129, true)
	s.Rebuild()

	assert.True(t, s.Get(0))
	assert.True(t, s.Get(63))
	assert.True(t, s.Get(64))
	assert.True(t, s.Get(129))
	assert.False(t, s.Get(1))
	assert.Equal(t, 4, s.PopCount())
}

func TestSelectFindsKthSetBit(t *testing.T) {
	s := New(200)
	for _, i := range []int{5, 70, 150} {
		s.Set(i, true)
	}
	s.Rebuild()

	idx, ok := s.Select(0)
	assert.True(t, ok)
	assert.Equal(t, 5, idx)

	idx, ok = s.Select(2)
	assert.True(t, ok)
	assert.Equal(t, 150, idx)

	_, ok = s.Select(3)
	assert.False(t, ok)
}

func TestCountBeforeMapsToVisibleRow(t *testing.T) {
	s := New(100)
	s.Set(10, true)
	s.Set(20, true)
	s.Set(30, true)
	s.Rebuild()

	assert.Equal(t, 0, s.CountBefore(10))
	assert.Equal(t, 1, s.CountBefore(15))
	assert.Equal(t, 2, s.CountBefore(25))
}

func TestNextSetAndPrevSet(t *testing.T) {
	s := New(100)
	s.Set(10, true)
	s.Set(20, true)
	s.Rebuild()

	next, ok := s.NextSet(10)
	assert.True(t, ok)
	assert.Equal(t, 20, next)

	prev, ok := s.PrevSet(20)
	assert.True(t, ok)
	assert.Equal(t, 10, prev)

	_, ok = s.NextSet(20)
	assert.False(t, ok)
}

func TestAndPopCountMatchesIntersectionSize(t *testing.T) {
	a := New(64)
	b := New(64)
	a.Set(1, true)
	a.Set(2, true)
	a.Set(3, true)
	b.Set(2, true)
	b.Set(3, true)
	b.Set(4, true)
	a.Rebuild()
	b.Rebuild()

	assert.Equal(t, 2, a.AndPopCount(b))
}

func TestResetClearsAndResizes(t *testing.T) {
	s := New(64)
	s.Set(5, true)
	s.Rebuild()

	s.Reset(128)
	s.Rebuild()

	assert.Equal(t, 0, s.PopCount())
	assert.Equal(t, 128, s.Len())
}
