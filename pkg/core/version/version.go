// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all ippc components
const (
	// Toolchain version
	Toolchain = "1.0.0"

	// Component versions
	Parser = "1.0.0"
	Tester = "1.0.0"
	Server = "1.0.0"
)

// Set at build time via -ldflags "-X".
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "parse", "parser":
		return Parser
	case "test", "tester":
		return Tester
	case "serve", "server":
		return Server
	default:
		return Toolchain
	}
}

// String returns a one-line version banner
func String() string {
	return fmt.Sprintf("ippc %s (commit %s, built %s, %s %s/%s)",
		Toolchain, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
