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

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveConflictsPassesThroughNonConflicting(t *testing.T) {
	out, outcome := ResolveConflicts([]string{"a", "b"}, func(string) bool { return false }, nil)
	assert.Equal(t, Proceed, outcome)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestResolveConflictsAbortStopsImmediately(t *testing.T) {
	_, outcome := ResolveConflicts([]string{"a"}, func(string) bool { return true }, func(string) Response { return Abort })
	assert.Equal(t, Aborted, outcome)
}

func TestResolveConflictsNoAllDropsEverything(t *testing.T) {
	out, outcome := ResolveConflicts([]string{"a", "b"}, func(string) bool { return true }, func(string) Response { return NoAll })
	assert.Equal(t, DroppedAll, outcome)
	assert.Nil(t, out)
}

func TestResolveConflictsYesAllSticksWithoutReprompting(t *testing.T) {
	calls := 0
	prompt := func(string) Response {
		calls++
		return YesAll
	}
	out, outcome := ResolveConflicts([]string{"a", "b", "c"}, func(string) bool { return true }, prompt)
	assert.Equal(t, Proceed, outcome)
	assert.Equal(t, []string{"a", "b", "c"}, out)
	assert.Equal(t, 1, calls, "yes-all should only prompt once")
}

func TestResolveConflictsNoDropsJustOneOperand(t *testing.T) {
	i := 0
	responses := []Response{No, Yes}
	prompt := func(string) Response {
		r := responses[i]
		i++
		return r
	}
	out, outcome := ResolveConflicts([]string{"a", "b"}, func(string) bool { return true }, prompt)
	assert.Equal(t, Proceed, outcome)
	assert.Equal(t, []string{"b"}, out)
}
