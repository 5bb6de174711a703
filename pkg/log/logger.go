// Package log provides a small leveled logger with optional JSON output
// and file rotation for the long-running server path.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a Logger.
type Options struct {
	Name  string // component name included in every entry
	Level Level
	File  string // when set, entries are also written to a rotated file
	JSON  bool   // emit JSON entries instead of text
}

// Logger writes leveled log entries to stdout and, optionally, a rotated
// log file.
type Logger struct {
	writer io.Writer
	opts   Options
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
}

const timeFormat = "2006-01-02 15:04:05"

// New creates a logger with the given options.
func New(opts Options) *Logger {
	writers := []io.Writer{os.Stdout}

	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    128, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}

	return &Logger{
		writer: io.MultiWriter(writers...),
		opts:   opts,
	}
}

// Named returns a logger that shares this logger's output but reports a
// sub-component name.
func (l *Logger) Named(name string) *Logger {
	opts := l.opts
	if opts.Name != "" {
		opts.Name = opts.Name + "/" + name
	} else {
		opts.Name = name
	}
	return &Logger{
		writer: l.writer,
		opts:   opts,
	}
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if level < l.opts.Level {
		return
	}

	timestamp := time.Now().Format(timeFormat)
	formatted := fmt.Sprintf(msg, args...)

	if l.opts.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Component: l.opts.Name,
			Message:   formatted,
		}
		data, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", data)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.opts.Name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.opts.Name)
		}
		fmt.Fprintf(l.writer, "%s %s\n", prefix, formatted)
	}

	if level == LevelFatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(LevelFatal, msg, args...)
}
