// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     resultviewer
// Description: Styles for the ResultViewer TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package resultviewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/ippcode/internal/tester/report"
)

// Color Palette - Same as the test report for consistency
var (
	ColorPrimary   = report.ColorPrimary
	ColorSuccess   = report.ColorSuccess
	ColorWarning   = report.ColorWarning
	ColorError     = report.ColorError
	ColorText      = report.ColorText
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray
	ColorBgPanel   = lipgloss.Color("#1E293B") // Slate 800
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)

	ListPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PassStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	FailStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Logo
const Logo = "ippc Testergebnisse"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// RenderVerdict renders a PASS or FAIL badge
func RenderVerdict(passed bool) string {
	if passed {
		return PassStyle.Render("PASS")
	}
	return FailStyle.Render("FAIL")
}
