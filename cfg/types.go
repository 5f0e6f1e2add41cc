// Copyright 2024 Google LLC
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
	"slices"
	"strings"

	"github.com/go-dfm/dfm/internal/util"
)

// SortMode is the datatype for the -s flag / sort config key: one of the
// seven orderings the sorter package exposes.
type SortMode string

const (
	SortNatural         SortMode = "n"
	SortNaturalReversed SortMode = "N"
	SortExtension       SortMode = "e"
	SortSize            SortMode = "s"
	SortSizeReversed    SortMode = "S"
	SortDate            SortMode = "d"
	SortDateReversed    SortMode = "D"
)

func (s *SortMode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = SortNatural
		return nil
	}
	v := string(text)
	valid := []string{"n", "N", "e", "s", "S", "d", "D"}
	if !slices.Contains(valid, v) {
		return fmt.Errorf("invalid sort mode: %s. It can only accept values in the list: %v", v, valid)
	}
	*s = SortMode(v)
	return nil
}

func (s SortMode) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// ViewMode is the datatype for the -v flag / view config key: which columns
// the drawer renders alongside the name.
type ViewMode string

const (
	ViewName       ViewMode = "n"
	ViewSize       ViewMode = "s"
	ViewPermission ViewMode = "p"
	ViewTime       ViewMode = "t"
	ViewAll        ViewMode = "a"
)

func (v *ViewMode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*v = ViewName
		return nil
	}
	s := string(text)
	valid := []string{"n", "s", "p", "t", "a"}
	if !slices.Contains(valid, s) {
		return fmt.Errorf("invalid view mode: %s. It can only accept values in the list: %v", s, valid)
	}
	*v = ViewMode(s)
	return nil
}

func (v ViewMode) MarshalText() ([]byte, error) {
	return []byte(v), nil
}

// LogSeverity represents the logging severity and can accept the following
// values: "TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "OFF".
type LogSeverity string

const (
	TraceLogSeverity   LogSeverity = "TRACE"
	DebugLogSeverity   LogSeverity = "DEBUG"
	InfoLogSeverity    LogSeverity = "INFO"
	WarningLogSeverity LogSeverity = "WARNING"
	ErrorLogSeverity   LogSeverity = "ERROR"
	OffLogSeverity     LogSeverity = "OFF"
)

var severityRanking = map[LogSeverity]int{
	TraceLogSeverity:   0,
	DebugLogSeverity:   1,
	InfoLogSeverity:    2,
	WarningLogSeverity: 3,
	ErrorLogSeverity:   4,
	OffLogSeverity:     5,
}

func (l *LogSeverity) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = InfoLogSeverity
		return nil
	}
	level := LogSeverity(strings.ToUpper(string(text)))
	if _, ok := severityRanking[level]; !ok {
		return fmt.Errorf("invalid log severity level: %s. Must be one of [TRACE, DEBUG, INFO, WARNING, ERROR, OFF]", text)
	}
	*l = level
	return nil
}

// Rank returns the integer representation of the severity rank, or -1 if
// unknown.
func (l LogSeverity) Rank() int {
	if rank, ok := severityRanking[l]; ok {
		return rank
	}
	return -1
}

// ResolvedPath is a filesystem path canonicalized (symlinks resolved, "~"
// expanded, made absolute) at decode time.
type ResolvedPath string

func (p *ResolvedPath) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		*p = ""
		return nil
	}
	path, err := util.ResolvePath(s)
	if err != nil {
		return err
	}
	*p = ResolvedPath(path)
	return nil
}
