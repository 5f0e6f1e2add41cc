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

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/go-dfm/dfm/cfg"
	"github.com/go-dfm/dfm/internal/core"
	"github.com/go-dfm/dfm/internal/logger"
)

// Run initializes logging from the resolved config and starts the core event
// loop rooted at startDir. It returns the error the loop exits with, if any;
// Execute translates that into the process exit code.
func Run(c *cfg.Config, startDir string) error {
	if err := logger.Init(string(c.Logging.Severity), c.Logging.Format, string(c.Logging.FilePath)); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logger.Close()

	logger.Infof("starting dfm at %s", startDir)

	loop, err := core.New(c, startDir)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	defer loop.Close()

	return runLoop(loop, c)
}

// runLoop runs the event loop with a panic guard: a panic mid-raw-mode would
// otherwise unwind straight out of main with the terminal left in whatever
// state drawer.EnterScreen put it in (loop.Close's deferred LeaveScreen still
// fires on the unwind, so the terminal itself is restored), but the stack
// trace that would explain why is easy to lose once the alt screen is torn
// down. crashLogPath's writer captures it to a file instead.
func runLoop(loop *core.Loop, c *cfg.Config) (err error) {
	cw := &CrashWriter{fileName: crashLogPath(c)}
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			fmt.Fprintf(cw, "panic: %v\n\n%s", r, stack)
			err = fmt.Errorf("core: crashed: %v (crash log: %s)", r, cw.fileName)
		}
	}()
	return loop.Run()
}

// crashLogPath places the crash log next to the configured log file when
// file logging is on, falling back to the system temp directory otherwise.
func crashLogPath(c *cfg.Config) string {
	if dir := filepath.Dir(string(c.Logging.FilePath)); cfg.IsLoggingToFile(c) && dir != "." {
		return filepath.Join(dir, "dfm-crash.log")
	}
	return filepath.Join(os.TempDir(), "dfm-crash.log")
}
