// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     resultviewer
// Description: Message types for async operations in the ResultViewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package resultviewer

import (
	"github.com/msto63/ippcode/internal/tester"
	"github.com/msto63/ippcode/internal/tester/store"
)

// Message types for tea.Cmd async operations

// runsLoadedMsg is sent when the run list is loaded from the store
type runsLoadedMsg struct {
	runs []store.RunSummary
	err  error
}

// runLoadedMsg is sent when one run with its results is loaded
type runLoadedMsg struct {
	run *tester.Run
	err error
}
