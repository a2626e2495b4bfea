// Package error provides structured errors for the IPPcode18 translator.
//
// Package: error
// Title: Structured Error Handling
// Description: Errors carry a Code that classifies the failure (lexical,
//              syntax, input/output, internal) and maps onto the exit codes
//              of the command line front-end.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Usage:
//
//	import ippcerr "github.com/msto63/ippcode/foundation/core/error"
//
//	err := ippcerr.New("cannot open source").
//		WithCode(ippcerr.CodeInputOpen).
//		WithDetail("path", path)
//
//	os.Exit(ippcerr.ExitCode(err))
package error
