// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify translator failures and
//              maps them onto process exit codes of the command line front-end.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Translator codes and exit code mapping

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"
	CodeNotFound Code = "NOT_FOUND"

	// Source analysis
	CodeLexical         Code = "LEXICAL_ERROR"
	CodeSyntax          Code = "SYNTAX_ERROR"
	CodeInvalidContext  Code = "INVALID_CONTEXT"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Document building
	CodeContractViolation Code = "CONTRACT_VIOLATION"

	// Front-end and environment
	CodeInvalidParameter Code = "INVALID_PARAMETER"
	CodeInputOpen        Code = "INPUT_OPEN_FAILED"
	CodeOutputOpen       Code = "OUTPUT_OPEN_FAILED"
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeDatabaseError    Code = "DATABASE_ERROR"
)

// Process exit codes of the command line front-end
const (
	ExitSuccess      = 0
	ExitParameter    = 10
	ExitInputOpen    = 11
	ExitOutputOpen   = 12
	ExitSourceFormat = 21
	ExitInternal     = 99
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound,
		CodeLexical, CodeSyntax, CodeInvalidContext, CodeInvalidArgument,
		CodeContractViolation,
		CodeInvalidParameter, CodeInputOpen, CodeOutputOpen, CodeConfigError, CodeDatabaseError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeSyntax, CodeInvalidArgument:
		return "source"
	case CodeInvalidContext, CodeContractViolation, CodeInternal:
		return "internal"
	case CodeInvalidParameter, CodeConfigError:
		return "configuration"
	case CodeInputOpen, CodeOutputOpen, CodeDatabaseError:
		return "io"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit code for this error code
func (c Code) ExitCode() int {
	switch c {
	case CodeInvalidParameter, CodeConfigError:
		return ExitParameter
	case CodeInputOpen:
		return ExitInputOpen
	case CodeOutputOpen:
		return ExitOutputOpen
	case CodeLexical, CodeSyntax, CodeInvalidArgument:
		return ExitSourceFormat
	default:
		return ExitInternal
	}
}

// ExitCode maps an error onto a process exit code. A nil error is success.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return GetCode(err).ExitCode()
}
