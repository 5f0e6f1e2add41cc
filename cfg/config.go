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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the fully resolved, post-Rationalize configuration for a dfm
// invocation: flags merged over environment merged over compiled-in
// defaults.
type Config struct {
	// Hidden is the initial state of the HIDDEN flag (dot-files shown).
	Hidden bool `yaml:"hidden"`

	// Picker, when set, makes dfm print the cwd to stdout on a clean exit.
	Picker bool `yaml:"picker"`

	// Opener is the program invoked to open a regular file (DFM_OPENER, -o).
	Opener string `yaml:"opener"`

	// Sort is the initial sort mode (-s).
	Sort SortMode `yaml:"sort"`

	// View is the initial view mode (-v).
	View ViewMode `yaml:"view"`

	// Shell runs `!`-commands via `$Shell -c`. Defaults from $SHELL.
	Shell string `yaml:"shell"`

	// Bookmarks maps a digit key 0-9 to a resolved path, sourced from
	// DFM_BOOKMARK_0..DFM_BOOKMARK_9.
	Bookmarks map[string]ResolvedPath `yaml:"bookmarks"`

	// Copyer is a stdin-consuming command invoked with the cwd string
	// (DFM_COPYER).
	Copyer string `yaml:"copyer"`

	// Trash is the trash-helper command invoked for the trash action
	// (DFM_TRASH).
	Trash string `yaml:"trash"`

	// TrashDir is the destination directory the trash helper is told about
	// (DFM_TRASH_DIR).
	TrashDir string `yaml:"trash-dir"`

	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Severity  LogSeverity            `yaml:"severity"`
	Format    string                 `yaml:"format"`
	FilePath  ResolvedPath           `yaml:"file-path"`
	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`
}

type LogRotateLoggingConfig struct {
	MaxFileSizeMb   int  `yaml:"max-file-size-mb"`
	BackupFileCount int  `yaml:"backup-file-count"`
	Compress        bool `yaml:"compress"`
}

// BindFlags registers dfm's pflag set and binds each flag into the matching
// viper key, the same two-step flagSet.XxxP + viper.BindPFlag dance used for
// every flag in a generated gcsfuse-style config.
func BindFlags(flagSet *pflag.FlagSet) error {
	var err error

	flagSet.BoolP("hidden", "H", false, "Start with dot-files shown.")
	if err = viper.BindPFlag("hidden", flagSet.Lookup("hidden")); err != nil {
		return err
	}

	flagSet.BoolP("picker", "p", false, "Print the chosen path to stdout on exit.")
	if err = viper.BindPFlag("picker", flagSet.Lookup("picker")); err != nil {
		return err
	}

	flagSet.StringP("opener", "o", "", "Program used to open a regular file.")
	if err = viper.BindPFlag("opener", flagSet.Lookup("opener")); err != nil {
		return err
	}

	flagSet.StringP("sort", "s", "", "Initial sort mode: one of n N e s S d D.")
	if err = viper.BindPFlag("sort", flagSet.Lookup("sort")); err != nil {
		return err
	}

	flagSet.StringP("view", "v", "", "Initial view mode: one of n s p t a.")
	if err = viper.BindPFlag("view", flagSet.Lookup("view")); err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", "", "Logging severity: TRACE DEBUG INFO WARNING ERROR OFF.")
	if err = viper.BindPFlag("logging.severity", flagSet.Lookup("log-severity")); err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "Path to a log file; unset logs to stderr.")
	if err = viper.BindPFlag("logging.file-path", flagSet.Lookup("log-file")); err != nil {
		return err
	}

	flagSet.StringP("log-format", "", "", "Log output format: text or json.")
	if err = viper.BindPFlag("logging.format", flagSet.Lookup("log-format")); err != nil {
		return err
	}

	return nil
}
