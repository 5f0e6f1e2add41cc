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

	"github.com/go-dfm/dfm/cfg"
	"github.com/go-dfm/dfm/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	bindErr      error
	unmarshalErr error
	RunConfig    cfg.Config
)

var rootCmd = &cobra.Command{
	Use:     "dfm [flags] [path]",
	Short:   "An interactive terminal file manager",
	Version: version,
	Long: `dfm is an interactive terminal file manager: it displays a directory,
reacts to keystrokes to navigate, filter, and mark entries, and spawns
external helper programs to act on them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if bindErr != nil {
			return bindErr
		}
		if unmarshalErr != nil {
			return unmarshalErr
		}
		if err := cfg.Rationalize(&RunConfig); err != nil {
			return fmt.Errorf("rationalizing config: %w", err)
		}
		if err := cfg.ValidateConfig(&RunConfig); err != nil {
			return err
		}

		startDir, err := populateArgs(args)
		if err != nil {
			return err
		}
		return Run(&RunConfig, startDir)
	},
}

func populateArgs(args []string) (string, error) {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	resolved, err := util.ResolveDir(dir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}
	return resolved, nil
}

// Execute runs the root command, printing any error to stderr and setting
// the process exit code: 1 on init/argument failure, whatever Run returns
// otherwise (including 128+signo on a killed child, per spec's exit codes).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var xc interface{ ExitCode() int }
		if ok := asExitCode(err, &xc); ok {
			os.Exit(xc.ExitCode())
		}
		os.Exit(1)
	}
}

func asExitCode(err error, target *interface{ ExitCode() int }) bool {
	for err != nil {
		if xc, ok := err.(interface{ ExitCode() int }); ok {
			*target = xc
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func init() {
	cobra.OnInitialize(initConfig)
	bindErr = cfg.BindFlags(rootCmd.Flags())
}

func initConfig() {
	unmarshalErr = viper.Unmarshal(&RunConfig, viper.DecodeHook(cfg.DecodeHook()))
}
