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

package spawn

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTTY struct {
	cooked bool
	raw    bool
}

func (f *fakeTTY) Cook() error { f.cooked = true; return nil }
func (f *fakeTTY) Raw() error  { f.raw = true; return nil }

func TestRunForegroundSuccess(t *testing.T) {
	got := RunForeground(Request{Argv: []string{"/bin/true"}, Stdout: os.Stdout, Stderr: os.Stderr}, nil)
	assert.Equal(t, Success, got)
}

func TestRunForegroundExitedNonZero(t *testing.T) {
	got := RunForeground(Request{Argv: []string{"/bin/false"}, Stdout: os.Stdout, Stderr: os.Stderr}, nil)
	assert.Equal(t, ExitedNonZero, got)
	assert.Equal(t, "exited non-zero", got.Message())
}

func TestRunForegroundHandsOffTTYAroundSpawn(t *testing.T) {
	tty := &fakeTTY{}
	RunForeground(Request{Argv: []string{"/bin/true"}, Stdout: os.Stdout, Stderr: os.Stderr}, tty)
	assert.True(t, tty.cooked)
	assert.True(t, tty.raw)
}

func TestStartBackgroundAndWaitAsync(t *testing.T) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer devNull.Close()

	bg, err := StartBackground(Request{Argv: []string{"/bin/true"}, Stdout: devNull, Stderr: devNull})
	require.NoError(t, err)

	got := <-bg.WaitAsync()
	assert.Equal(t, Success, got)
}

func TestClassifyMapsExitCode127ToNotFound(t *testing.T) {
	// A command that runs via shell -c and exits 127 simulates "not found".
	got := RunForeground(Request{Argv: []string{"/bin/sh", "-c", "exit 127"}, Stdout: os.Stdout, Stderr: os.Stderr}, nil)
	assert.Equal(t, NotFound, got)
}
