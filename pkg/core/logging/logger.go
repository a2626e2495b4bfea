// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     logging
// Description: Key-value logger used by the gRPC layer
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	ippclog "github.com/msto63/ippcode/foundation/core/log"
)

// Logger wraps the foundation logger with key-value call style
type Logger struct {
	*ippclog.Logger
	name string
}

// New creates a key-value logger with default configuration
func New(name string) *Logger {
	return Wrap(NewSimpleLogger(name), name)
}

// Wrap adapts an existing foundation logger
func Wrap(l *ippclog.Logger, name string) *Logger {
	return &Logger{Logger: l, name: name}
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to fields. Non-string keys and a
// trailing key without value are dropped.
func toFields(keysAndValues ...interface{}) ippclog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(ippclog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
