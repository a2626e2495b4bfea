// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, derived loggers, formatters
//              and error logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf}), &buf
}

func TestNewWithConfig(t *testing.T) {
	logger, _ := newBufferLogger(LevelError, FormatText)
	if logger.GetLevel() != LevelError {
		t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), LevelError)
	}
	if New().GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", New().GetLevel(), DefaultLevel())
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered message: %q", out)
	}
	if !strings.Contains(out, "WRN shown") {
		t.Errorf("output = %q, want warn line", out)
	}
}

func TestWithNameAndFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	child := logger.WithName("ippc").WithName("parse").WithField("file", "a.src")
	child.Info("done", Fields{"instructions": 3})

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, output %q", err, buf.String())
	}
	if got["logger"] != "ippc.parse" {
		t.Errorf("logger = %v, want ippc.parse", got["logger"])
	}
	if got["file"] != "a.src" {
		t.Errorf("file = %v, want a.src", got["file"])
	}
	if got["instructions"] != float64(3) {
		t.Errorf("instructions = %v, want 3", got["instructions"])
	}

	buf.Reset()
	logger.Info("parent")
	if strings.Contains(buf.String(), "a.src") {
		t.Error("child fields leaked into parent logger")
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   []string
	}{
		{"text", FormatText, []string{"INF", "hello", "k=v"}},
		{"json", FormatJSON, []string{`"message":"hello"`, `"k":"v"`, `"level":"info"`}},
		{"logfmt", FormatLogfmt, []string{"level=info", "msg=hello", "k=v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelInfo, tt.format)
			logger.Info("hello", Fields{"k": "v"})
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q missing %q", buf.String(), w)
				}
			}
		})
	}
}

func TestLogfmtQuoting(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatLogfmt)
	logger.Info("two words", Fields{"empty": ""})
	if !strings.Contains(buf.String(), `msg="two words"`) {
		t.Errorf("output %q, want quoted msg", buf.String())
	}
	if !strings.Contains(buf.String(), `empty=""`) {
		t.Errorf("output %q, want quoted empty value", buf.String())
	}
}

func TestLogError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("boom"), "ERR boom"},
		{"lexical is info", ippcerr.New("bad header").WithCode(ippcerr.CodeLexical), "INF bad header"},
		{"io is error", ippcerr.New("cannot open").WithCode(ippcerr.CodeInputOpen).WithDetail("path", "x"), "error_path=x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatText)
			logger.LogError(tt.err)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}

	logger, buf := newBufferLogger(LevelTrace, FormatText)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) wrote %q", buf.String())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	levels := map[string]Level{"trace": LevelTrace, "DEBUG": LevelDebug, "warning": LevelWarn, "": LevelInfo}
	for in, want := range levels {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}

	formats := map[string]Format{"json": FormatJSON, "console": FormatText, "logfmt": FormatLogfmt}
	for in, want := range formats {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)
	timer := logger.StartTimer("parse").WithField("file", "a.src")
	timer.Stop()
	timer.Stop()

	out := buf.String()
	if strings.Count(out, "operation completed") != 1 {
		t.Errorf("Stop() logged %d times, want 1: %q", strings.Count(out, "operation completed"), out)
	}
	if !strings.Contains(out, "operation=parse") || !strings.Contains(out, "file=a.src") {
		t.Errorf("output %q missing timer fields", out)
	}
}
