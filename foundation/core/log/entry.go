// File: entry.go
// Title: Log Entry
// Description: The record handed from the logger to a formatter.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package log

import (
	"sort"
	"time"
)

// Fields holds structured key-value data attached to an entry
type Fields map[string]interface{}

// Entry is a single log record
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	Fields    Fields
	Error     error
}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// SortedKeys returns the field keys in lexical order so output is stable
func (e *Entry) SortedKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
