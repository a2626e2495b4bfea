// File: errors.go
// Title: Analyzer Errors
// Description: Lexical and syntax errors raised while analysing a source.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19

package analyzer

import (
	"errors"
	"fmt"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
)

// ErrInvalidContext is wrapped by the error returned when the analyzer is
// in a context it does not know
var ErrInvalidContext = errors.New("invalid analyzer context")

// ErrorKind classifies a SourceError
type ErrorKind int

const (
	// LexicalError is a malformed header, opcode or argument
	LexicalError ErrorKind = iota
	// SyntaxError is a wrong number of arguments
	SyntaxError
)

// String returns the kind name
func (k ErrorKind) String() string {
	if k == SyntaxError {
		return "syntax error"
	}
	return "lexical error"
}

// SourceError reports a problem in the analysed text
type SourceError struct {
	Kind     ErrorKind
	Line     int
	Expected string
	Actual   string
	EOF      bool // Actual is meaningless, input ended

	coded *ippcerr.Error
}

func newSourceError(kind ErrorKind, line int, expected, actual string) *SourceError {
	e := &SourceError{Kind: kind, Line: line, Expected: expected, Actual: actual}
	e.attachCode()
	return e
}

func newEOFError(line int, expected string) *SourceError {
	e := &SourceError{Kind: LexicalError, Line: line, Expected: expected, EOF: true}
	e.attachCode()
	return e
}

func (e *SourceError) attachCode() {
	code := ippcerr.CodeLexical
	if e.Kind == SyntaxError {
		code = ippcerr.CodeSyntax
	}
	e.coded = ippcerr.New(e.Error()).
		WithCode(code).
		WithOperation("analyze").
		WithDetail("line", e.Line)
}

// Error renders "line N: expected X, got 'Y'"
func (e *SourceError) Error() string {
	if e.EOF {
		return fmt.Sprintf("line %d: expected %s, got EOF", e.Line, e.Expected)
	}
	return fmt.Sprintf("line %d: expected %s, got '%s'", e.Line, e.Expected, e.Actual)
}

// Unwrap exposes the coded error so that exit code mapping sees
// LEXICAL_ERROR or SYNTAX_ERROR
func (e *SourceError) Unwrap() error {
	return e.coded
}

// IsLexical reports whether err is a lexical SourceError
func IsLexical(err error) bool {
	var se *SourceError
	return errors.As(err, &se) && se.Kind == LexicalError
}

// IsSyntax reports whether err is a syntax SourceError
func IsSyntax(err error) bool {
	var se *SourceError
	return errors.As(err, &se) && se.Kind == SyntaxError
}
