// Copyright 2023 Google Inc. All Rights Reserved.
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

// Package logger provides the structured (log/slog) logger used throughout
// dfm. Severities below INFO are rarely enabled interactively (they would
// land on top of the alternate screen). Output goes to stderr unless Init is
// given a log file path; callers redirect to a buffer in tests.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity ranks, matching the five levels a user can select with
// --log-severity plus OFF, which disables logging entirely.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelOff   = slog.Level(16)
)

const (
	Trace   = "TRACE"
	Debug   = "DEBUG"
	Info    = "INFO"
	Warning = "WARNING"
	Error   = "ERROR"
	Off     = "OFF"
)

var levelNames = map[string]slog.Level{
	Trace:   LevelTrace,
	Debug:   LevelDebug,
	Info:    LevelInfo,
	Warning: LevelWarn,
	Error:   LevelError,
	Off:     LevelOff,
}

// asyncBufferSize bounds how many pending log lines may queue for the
// background flusher before Write blocks the caller.
const asyncBufferSize = 256

type loggerFactory struct {
	file   *AsyncLogger
	level  string
	format string
}

var (
	defaultLoggerFactory = &loggerFactory{level: Info, format: "text"}
	defaultLogger        = slog.New(defaultLoggerFactory.createJsonOrTextHandler(os.Stderr, programLevel(Info), ""))
)

func programLevel(level string) *slog.LevelVar {
	v := new(slog.LevelVar)
	setLoggingLevel(level, v)
	return v
}

func setLoggingLevel(level string, v *slog.LevelVar) {
	l, ok := levelNames[level]
	if !ok {
		l = LevelInfo
	}
	v.Set(l)
}

func (f *loggerFactory) createJsonOrTextHandler(w io.Writer, level *slog.LevelVar, msgPrefix string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "time"
				a.Value = slog.StringValue(a.Value.Time().Format("2006/01/02 15:04:05.000000"))
			case slog.LevelKey:
				a.Key = "severity"
				a.Value = slog.StringValue(severityName(a.Value.Any().(slog.Level)))
			case slog.MessageKey:
				a.Key = "message"
				a.Value = slog.StringValue(msgPrefix + a.Value.String())
			}
			return a
		},
	}
	if f.format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func severityName(l slog.Level) string {
	switch {
	case l < LevelDebug:
		return Trace
	case l < LevelInfo:
		return Debug
	case l < LevelWarn:
		return Info
	case l < LevelError:
		return Warning
	default:
		return Error
	}
}

// SetLogFormat switches the default logger between "text" and "json" output,
// defaulting to json for any other value (matching the teacher's behavior of
// treating an empty/unrecognized format as json).
func SetLogFormat(format string) {
	if format != "text" {
		format = "json"
	}
	defaultLoggerFactory.format = format
	v := programLevel(defaultLoggerFactory.level)
	var w io.Writer = os.Stderr
	if defaultLoggerFactory.file != nil {
		w = defaultLoggerFactory.file
	}
	defaultLogger = slog.New(defaultLoggerFactory.createJsonOrTextHandler(w, v, ""))
}

// Init (re)configures the default logger from a resolved severity, format,
// and optional destination file path. An empty path keeps logging on stderr.
// A non-empty path is backed by a rotating lumberjack.Logger wrapped in an
// AsyncLogger, so log writes never block the key-dispatch path on disk I/O.
func Init(severity, format, filePath string) error {
	if defaultLoggerFactory.file != nil {
		defaultLoggerFactory.file.Close()
		defaultLoggerFactory.file = nil
	}

	defaultLoggerFactory.level = severity
	defaultLoggerFactory.format = format

	var w io.Writer = os.Stderr
	if filePath != "" {
		lj := &lumberjack.Logger{Filename: filePath}
		async := NewAsyncLogger(lj, asyncBufferSize)
		defaultLoggerFactory.file = async
		w = async
	}

	v := programLevel(severity)
	defaultLogger = slog.New(defaultLoggerFactory.createJsonOrTextHandler(w, v, ""))
	return nil
}

// Close flushes and releases the file-backed logger, if any. Callers should
// invoke this during shutdown so buffered log lines aren't lost on exit.
func Close() error {
	if defaultLoggerFactory.file == nil {
		return nil
	}
	err := defaultLoggerFactory.file.Close()
	defaultLoggerFactory.file = nil
	return err
}

func Tracef(format string, args ...any) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, args...))
}
func Debugf(format string, args ...any) { defaultLogger.Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { defaultLogger.Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { defaultLogger.Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { defaultLogger.Error(fmt.Sprintf(format, args...)) }
