// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes and exit code mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("test error message")
	if err.Error() != "test error message" {
		t.Errorf("Error() = %q, want %q", err.Error(), "test error message")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{name: "nil error", err: nil, message: "wrapper", wantNil: true},
		{
			name:     "standard error",
			err:      errors.New("original"),
			message:  "wrapper",
			wantMsg:  "wrapper: original",
			wantCode: CodeUnknown,
		},
		{
			name:     "coded error keeps code",
			err:      New("bad opcode").WithCode(CodeLexical),
			message:  "parse",
			wantMsg:  "parse: bad opcode",
			wantCode: CodeLexical,
		},
		{
			name:     "coded error behind fmt wrapping",
			err:      fmt.Errorf("ctx: %w", New("eof").WithCode(CodeSyntax)),
			message:  "parse",
			wantMsg:  "parse: ctx: eof",
			wantCode: CodeSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is() should find the cause")
			}
		})
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeLexical, SeverityLow},
		{CodeInputOpen, SeverityHigh},
		{CodeContractViolation, SeverityCritical},
		{CodeUnknown, SeverityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			got := New("x").WithCode(tt.code).Severity()
			if got != tt.want {
				t.Errorf("Severity() = %v, want %v", got, tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityHigh).WithCode(CodeLexical)
	if explicit.Severity() != SeverityHigh {
		t.Errorf("explicit severity overwritten: %v", explicit.Severity())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitInternal},
		{"parameter", New("x").WithCode(CodeInvalidParameter), ExitParameter},
		{"input", New("x").WithCode(CodeInputOpen), ExitInputOpen},
		{"output", New("x").WithCode(CodeOutputOpen), ExitOutputOpen},
		{"lexical", New("x").WithCode(CodeLexical), ExitSourceFormat},
		{"syntax", New("x").WithCode(CodeSyntax), ExitSourceFormat},
		{"invalid context", New("x").WithCode(CodeInvalidContext), ExitInternal},
		{"wrapped syntax", fmt.Errorf("a: %w", New("x").WithCode(CodeSyntax)), ExitSourceFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	inner := New("inner").WithCode(CodeLexical)
	outer := Wrap(inner, "outer").WithCode(CodeInternal)

	if !HasCode(outer, CodeInternal) {
		t.Error("HasCode(outer, CodeInternal) = false, want true")
	}
	if !HasCode(outer, CodeLexical) {
		t.Error("HasCode(outer, CodeLexical) = false, want true")
	}
	if HasCode(errors.New("plain"), CodeLexical) {
		t.Error("HasCode(plain) = true, want false")
	}
	if GetCode(outer) != CodeInternal {
		t.Errorf("GetCode() = %v, want %v", GetCode(outer), CodeInternal)
	}
}

func TestStringAndJSON(t *testing.T) {
	err := Wrap(errors.New("disk"), "open").
		WithCode(CodeOutputOpen).
		WithOperation("parse").
		WithDetail("path", "/tmp/out.xml")

	s := err.String()
	for _, want := range []string{"Code: OUTPUT_OPEN_FAILED", "Operation: parse", "path=/tmp/out.xml", "Cause: disk"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in %q", want, s)
		}
	}

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}
	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != "OUTPUT_OPEN_FAILED" {
		t.Errorf("code = %v, want OUTPUT_OPEN_FAILED", decoded["code"])
	}
	if decoded["cause"] != "disk" {
		t.Errorf("cause = %v, want disk", decoded["cause"])
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeSyntax, "source"},
		{CodeContractViolation, "internal"},
		{CodeInvalidParameter, "configuration"},
		{CodeOutputOpen, "io"},
		{CodeUnknown, "generic"},
	}
	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.want {
			t.Errorf("%v.Category() = %q, want %q", tt.code, got, tt.want)
		}
		if !tt.code.IsValid() {
			t.Errorf("%v.IsValid() = false", tt.code)
		}
	}
	if Code("NOPE").IsValid() {
		t.Error("unknown code reported valid")
	}
}
