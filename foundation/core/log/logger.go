// File: logger.go
// Title: Core Logger Implementation
// Description: The Logger type. Loggers are immutable once built; WithField,
//              WithName and friends return derived copies sharing the output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-19 v0.2.0: Dropped async mode, logs coded errors by severity

package log

import (
	"io"
	"os"
	"sync"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
)

// Logger is a structured logger with persistent context fields
type Logger struct {
	level     Level
	formatter Formatter
	name      string
	fields    Fields

	out *syncWriter
}

// syncWriter serialises writes of derived loggers sharing one destination
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) write(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(p)
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a text logger at the default level writing to stderr
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatText})
}

// NewWithConfig creates a logger from the configuration. A nil Output
// means stderr.
func NewWithConfig(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level:     config.Level,
		formatter: GetFormatter(config.Format),
		name:      config.Name,
		fields:    make(Fields),
		out:       &syncWriter{w: out},
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelFatal + 1, Output: io.Discard})
}

func (l *Logger) clone() *Logger {
	c := *l
	c.fields = make(Fields, len(l.fields))
	for k, v := range l.fields {
		c.fields[k] = v
	}
	return &c
}

// WithName returns a logger with the given name. Names of nested loggers
// are joined with a dot.
func (l *Logger) WithName(name string) *Logger {
	c := l.clone()
	if l.name != "" {
		c.name = l.name + "." + name
	} else {
		c.name = name
	}
	return c
}

// WithField returns a logger that adds key to every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

// WithFields returns a logger that adds all fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	c := l.clone()
	for k, v := range fields {
		c.fields[k] = v
	}
	return c
}

// WithLevel returns a logger with a different threshold
func (l *Logger) WithLevel(level Level) *Logger {
	c := l.clone()
	c.level = level
	return c
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// GetLevel returns the current threshold
func (l *Logger) GetLevel() Level { return l.level }

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.Enabled(l.level)
}

func (l *Logger) Trace(message string, fields ...Fields) { l.log(LevelTrace, message, nil, fields) }
func (l *Logger) Debug(message string, fields ...Fields) { l.log(LevelDebug, message, nil, fields) }
func (l *Logger) Info(message string, fields ...Fields) { l.log(LevelInfo, message, nil, fields) }
func (l *Logger) Warn(message string, fields ...Fields) { l.log(LevelWarn, message, nil, fields) }
func (l *Logger) Error(message string, fields ...Fields) { l.log(LevelError, message, nil, fields) }

// Fatal logs at fatal level and exits with status 1
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields)
	os.Exit(1)
}

// ErrorWithErr logs an error message with an error object attached
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields)
}

// WarnWithErr logs a warning with an error object attached
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields)
}

// LogError logs err at a level derived from its severity. Coded errors
// contribute their code and details as fields.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}
	e, ok := ippcerr.As(err)
	if !ok {
		l.log(LevelError, err.Error(), nil, nil)
		return
	}

	fields := Fields{"error_code": e.Code().String()}
	if op := e.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range e.Details() {
		fields["error_"+k] = v
	}

	level := LevelError
	switch e.Severity() {
	case ippcerr.SeverityLow:
		level = LevelInfo
	case ippcerr.SeverityMedium:
		level = LevelWarn
	}
	l.log(level, err.Error(), nil, []Fields{fields})
}

// StartTimer creates and starts a timer for an operation
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

func (l *Logger) log(level Level, message string, err error, fields []Fields) {
	if !level.Enabled(l.level) {
		return
	}
	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.Error = err
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}
	if formatted, ferr := l.formatter.Format(entry); ferr == nil {
		l.out.write(formatted)
	}
}
