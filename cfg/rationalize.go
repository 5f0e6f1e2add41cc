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

import "os"

// Rationalize resolves config fields that depend on the environment and on
// each other, after flags and file config have already been merged into c.
// It mirrors the bind-then-rationalize two-phase flow: BindFlags populates
// raw values, Rationalize fills in anything still zero-valued from the
// process environment.
func Rationalize(c *Config) error {
	if c.Opener == "" {
		c.Opener = os.Getenv("DFM_OPENER")
	}

	if c.Shell == "" {
		c.Shell = os.Getenv("SHELL")
		if c.Shell == "" {
			c.Shell = "/bin/sh"
		}
	}

	if c.Copyer == "" {
		c.Copyer = os.Getenv("DFM_COPYER")
	}
	if c.Trash == "" {
		c.Trash = os.Getenv("DFM_TRASH")
	}
	if c.TrashDir == "" {
		c.TrashDir = os.Getenv("DFM_TRASH_DIR")
	}

	if c.Bookmarks == nil {
		c.Bookmarks = map[string]ResolvedPath{}
	}
	for digit := '0'; digit <= '9'; digit++ {
		key := string(digit)
		if _, ok := c.Bookmarks[key]; ok {
			continue
		}
		raw := os.Getenv("DFM_BOOKMARK_" + key)
		if raw == "" {
			continue
		}
		var resolved ResolvedPath
		if err := resolved.UnmarshalText([]byte(raw)); err != nil {
			return err
		}
		c.Bookmarks[key] = resolved
	}

	if c.Sort == "" {
		c.Sort = SortNatural
	}
	if c.View == "" {
		c.View = ViewName
	}
	if c.Logging.Severity == "" {
		c.Logging.Severity = InfoLogSeverity
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.LogRotate == (LogRotateLoggingConfig{}) {
		c.Logging.LogRotate = GetDefaultLoggingConfig().LogRotate
	}

	return nil
}
