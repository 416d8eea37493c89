// Package tracelog provides a leveled trace logger for the language server
// that writes to stderr and to any additional sinks registered with AddSink.
//
// It plays the role of the "logger" collaborator named in the specification:
// a sink for free-form trace strings, decoupled from stdout (which carries
// the LSP JSON-RPC stream) so log output can never corrupt a message frame.
package tracelog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Level orders trace verbosity from most to least chatty.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Sink receives a single formatted trace line. The server wires additional
// sinks (e.g. one that emits $/logTrace notifications) on top of the
// default stderr sink.
type Sink func(line string)

// Logger writes leveled trace lines to stderr and, optionally, to any
// registered additional sinks.
type Logger struct {
	prefix string
	level  Level

	mu    sync.Mutex
	sinks []Sink
}

// New creates a Logger with the given component prefix, defaulting to
// LevelInfo.
func New(prefix string) *Logger {
	return &Logger{prefix: prefix, level: LevelInfo}
}

// SetLevel adjusts the minimum level that reaches stderr.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// AddSink registers an additional destination for every trace line,
// regardless of level filtering against stderr.
func (l *Logger) AddSink(sink Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, sink)
}

func (l *Logger) emit(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	l.mu.Lock()
	sinks := append([]Sink(nil), l.sinks...)
	shouldPrint := level >= l.level
	prefix := l.prefix
	l.mu.Unlock()

	if shouldPrint {
		timestamp := time.Now().Format("2006/01/02 15:04:05")
		fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", timestamp, levelNames[level], prefix, message)
	}

	for _, sink := range sinks {
		sink(message)
	}
}

// Debug logs a debug-level trace line.
func (l *Logger) Debug(format string, args ...interface{}) { l.emit(LevelDebug, format, args...) }

// Info logs an info-level trace line.
func (l *Logger) Info(format string, args ...interface{}) { l.emit(LevelInfo, format, args...) }

// Warn logs a warning-level trace line.
func (l *Logger) Warn(format string, args ...interface{}) { l.emit(LevelWarn, format, args...) }

// Error logs an error-level trace line.
func (l *Logger) Error(format string, args ...interface{}) { l.emit(LevelError, format, args...) }
