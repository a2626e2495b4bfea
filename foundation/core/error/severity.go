// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that front-ends can decide
//              how loudly a failure is reported.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Mapping for translator codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a problem in user supplied input
	SeverityLow Severity = iota
	// SeverityMedium is the default
	SeverityMedium
	// SeverityHigh is an environment problem such as an unreadable file
	SeverityHigh
	// SeverityCritical is a programming defect
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level indicates a defect
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the severity level for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInvalidContext, CodeContractViolation, CodeInternal:
		return SeverityCritical
	case CodeInputOpen, CodeOutputOpen, CodeDatabaseError, CodeConfigError:
		return SeverityHigh
	case CodeLexical, CodeSyntax, CodeInvalidArgument, CodeInvalidParameter, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
