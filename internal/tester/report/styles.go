// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     report
// Description: Styles for the test report
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette - Same as the result viewer for consistency
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorText    = lipgloss.Color("#F8FAFC") // Slate 50
)

// Styles holds the report styles bound to one renderer
type Styles struct {
	Title   lipgloss.Style
	Case    lipgloss.Style
	Failure lipgloss.Style
	Label   lipgloss.Style
	Details lipgloss.Style
	Passed  lipgloss.Style
	Failed  lipgloss.Style
}

// NewStyles creates the styles for r. Writers that are not terminals get
// a renderer without colors.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Case: r.NewStyle().
			Foreground(ColorText).
			Bold(true),
		Failure: r.NewStyle().
			Foreground(ColorWarning),
		Label: r.NewStyle().
			Foreground(ColorMuted),
		Details: r.NewStyle().
			Foreground(ColorMuted).
			Italic(true),
		Passed: r.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Failed: r.NewStyle().
			Foreground(ColorError).
			Bold(true),
	}
}
