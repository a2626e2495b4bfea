// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     tester
// Description: Test harness for the IPPcode18 translator
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

// Package tester discovers test cases on disk and runs the translator on
// them.
//
// A test case is a source file (*.src) accompanied by reference files
// sharing its base name:
//
//	name.src   program source
//	name.in    interpreter input (default: empty)
//	name.out   expected interpreter output (default: empty)
//	name.rc    expected return code (default: 0)
//
// Missing reference files are created with their default content during
// discovery. Only the parse stage is executed; the interpreter stage is
// recorded as skipped.
package tester
