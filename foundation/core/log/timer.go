// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it on Stop.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package log

import (
	"time"
)

// Timer measures the duration of one operation
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a running timer logging at debug level
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the level of the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to the completion message
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop logs the completion message once and returns the elapsed time.
// Further calls only return the elapsed time.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	if t.stopped {
		return elapsed
	}
	t.stopped = true

	fields := Fields{
		"operation":   t.operation,
		"duration_ms": float64(elapsed.Microseconds()) / 1000,
	}
	for k, v := range t.fields {
		fields[k] = v
	}
	t.logger.log(t.level, "operation completed", nil, []Fields{fields})
	return elapsed
}
