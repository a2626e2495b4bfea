// File: format.go
// Title: Log Format Definitions
// Description: Output formats for log entries: human readable text, JSON and
//              logfmt.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format represents the output format for log messages
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatLogfmt
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatLogfmt:
		return "logfmt"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a log format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "console", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "logfmt":
		return FormatLogfmt, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q", s)
	}
}

// Formatter turns an entry into a single output line
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// GetFormatter returns the formatter for a format
func GetFormatter(f Format) Formatter {
	switch f {
	case FormatJSON:
		return &JSONFormatter{TimestampFormat: time.RFC3339}
	case FormatLogfmt:
		return &LogfmtFormatter{TimestampFormat: time.RFC3339}
	default:
		return &TextFormatter{TimestampFormat: "15:04:05.000"}
	}
}

// TextFormatter writes "time LVL [logger] message key=value ..."
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// Format implements Formatter
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var b bytes.Buffer
	if !f.DisableTimestamp {
		b.WriteString(entry.Timestamp.Format(f.TimestampFormat))
		b.WriteByte(' ')
	}
	b.WriteString(entry.Level.ShortString())
	if entry.Logger != "" {
		b.WriteString(" [")
		b.WriteString(entry.Logger)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	for _, k := range entry.SortedKeys() {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}
	if entry.Error != nil {
		fmt.Fprintf(&b, " error=%q", entry.Error.Error())
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// JSONFormatter writes one JSON object per entry
type JSONFormatter struct {
	TimestampFormat string
}

// Format implements Formatter
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+5)
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}
	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}
	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// LogfmtFormatter writes key=value pairs
type LogfmtFormatter struct {
	TimestampFormat string
}

// Format implements Formatter
func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	var b bytes.Buffer
	writePair(&b, "ts", entry.Timestamp.Format(f.TimestampFormat))
	writePair(&b, "level", entry.Level.String())
	if entry.Logger != "" {
		writePair(&b, "logger", entry.Logger)
	}
	writePair(&b, "msg", entry.Message)
	for _, k := range entry.SortedKeys() {
		writePair(&b, k, fmt.Sprint(entry.Fields[k]))
	}
	if entry.Error != nil {
		writePair(&b, "error", entry.Error.Error())
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func writePair(b *bytes.Buffer, key, value string) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(key)
	b.WriteByte('=')
	if value == "" || strings.ContainsAny(value, " =\"\t\n") {
		b.WriteString(strconv.Quote(value))
		return
	}
	b.WriteString(value)
}
