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

package cfg

import (
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortModeUnmarshalling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		str      string
		expected SortMode
		wantErr  bool
	}{
		{str: "n", expected: SortNatural},
		{str: "N", expected: SortNaturalReversed},
		{str: "e", expected: SortExtension},
		{str: "s", expected: SortSize},
		{str: "S", expected: SortSizeReversed},
		{str: "d", expected: SortDate},
		{str: "D", expected: SortDateReversed},
		{str: "x", wantErr: true},
	}

	for idx, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("sort-mode-unmarshalling: %d", idx), func(t *testing.T) {
			t.Parallel()
			var s SortMode
			err := (&s).UnmarshalText([]byte(tc.str))
			if tc.wantErr {
				assert.Error(t, err)
			} else if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, s)
			}
		})
	}
}

func TestViewModeUnmarshalling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		str      string
		expected ViewMode
		wantErr  bool
	}{
		{str: "n", expected: ViewName},
		{str: "s", expected: ViewSize},
		{str: "p", expected: ViewPermission},
		{str: "t", expected: ViewTime},
		{str: "a", expected: ViewAll},
		{str: "z", wantErr: true},
	}

	for idx, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("view-mode-unmarshalling: %d", idx), func(t *testing.T) {
			t.Parallel()
			var v ViewMode
			err := (&v).UnmarshalText([]byte(tc.str))
			if tc.wantErr {
				assert.Error(t, err)
			} else if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, v)
			}
		})
	}
}

func TestLogSeverityUnmarshalling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		str      string
		expected LogSeverity
		wantErr  bool
	}{
		{str: "TRACE", expected: "TRACE"},
		{str: "info", expected: "INFO"},
		{str: "debUG", expected: "DEBUG"},
		{str: "waRniNg", expected: "WARNING"},
		{str: "OFF", expected: "OFF"},
		{str: "ERROR", expected: "ERROR"},
		{str: "EMPEROR", wantErr: true},
	}

	for idx, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("log-severity-unmarshalling: %d", idx), func(t *testing.T) {
			t.Parallel()
			var l LogSeverity
			err := (&l).UnmarshalText([]byte(tc.str))
			if tc.wantErr {
				assert.Error(t, err)
			} else if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, l)
			}
		})
	}
}

func TestLogSeverityRank(t *testing.T) {
	assert.Equal(t, 0, TraceLogSeverity.Rank())
	assert.Equal(t, 5, OffLogSeverity.Rank())
	assert.Equal(t, -1, LogSeverity("BOGUS").Rank())
}

func TestResolvedPathUnmarshalling(t *testing.T) {
	t.Parallel()
	h, err := os.UserHomeDir()
	require.NoError(t, err)
	tests := []struct {
		str      string
		expected ResolvedPath
	}{
		{
			str:      "~/test.txt",
			expected: ResolvedPath(path.Join(h, "test.txt")),
		},
		{
			str:      "/a/test.txt",
			expected: "/a/test.txt",
		},
	}

	for idx, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("resolved-path-unmarshalling: %d", idx), func(t *testing.T) {
			t.Parallel()
			var p ResolvedPath
			err := (&p).UnmarshalText([]byte(tc.str))
			if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, p)
			}
		})
	}
}
