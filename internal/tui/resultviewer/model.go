// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     resultviewer
// Description: Bubbletea model browsing stored test runs
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package resultviewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/ippcode/internal/tester"
	"github.com/msto63/ippcode/internal/tester/store"
	"github.com/msto63/ippcode/pkg/core/version"
)

// Source provides stored runs
type Source interface {
	ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error)
	GetRun(ctx context.Context, id string) (*tester.Run, error)
}

type mode int

const (
	modeRuns mode = iota
	modeDetail
)

// Model is the main Bubbletea model for the ResultViewer
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	loading bool
	mode    mode
	err     error

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// Data
	runs       []store.RunSummary
	selected   int
	current    *tester.Run
	failedOnly bool

	// Configuration
	source Source
	limit  int
}

// Config holds ResultViewer configuration
type Config struct {
	Source Source
	Limit  int
}

// New creates a new ResultViewer model
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}

	return Model{
		spinner: sp,
		loading: true,
		source:  cfg.Source,
		limit:   cfg.Limit,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadRuns,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel
		footerHeight := 4 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case runsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.runs = msg.runs
			if m.selected >= len(m.runs) {
				m.selected = max(len(m.runs)-1, 0)
			}
		}
		m.updateViewportContent()

	case runLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.current = msg.run
			m.mode = modeDetail
			m.updateViewportContent()
			m.viewport.GotoTop()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.mode == modeRuns && m.selected > 0 {
			m.selected--
			m.updateViewportContent()
			m.keepSelectionVisible()
		} else if m.mode == modeDetail {
			m.viewport.LineUp(1)
		}

	case "down", "j":
		if m.mode == modeRuns && m.selected < len(m.runs)-1 {
			m.selected++
			m.updateViewportContent()
			m.keepSelectionVisible()
		} else if m.mode == modeDetail {
			m.viewport.LineDown(1)
		}

	case "enter":
		if m.mode == modeRuns && len(m.runs) > 0 {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadRun(m.runs[m.selected].ID))
		}

	case "esc", "backspace":
		if m.mode == modeDetail {
			m.mode = modeRuns
			m.current = nil
			m.updateViewportContent()
			m.keepSelectionVisible()
		}

	case "f":
		m.failedOnly = !m.failedOnly
		m.updateViewportContent()

	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadRuns)

	case "g":
		m.viewport.GotoTop()

	case "G":
		m.viewport.GotoBottom()

	case "pgup":
		m.viewport.ViewUp()

	case "pgdown":
		m.viewport.ViewDown()
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade Testergebnisse..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(ListPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := LogoStyle.Render(Logo)
	if m.mode == modeDetail && m.current != nil {
		title += "  " + HelpDescStyle.Render(m.current.ID)
	}
	return TitlePanelStyle.Width(m.width - 4).Render(title)
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.loading:
		left = m.spinner.View() + " Lade..."
	case m.err != nil:
		left = ErrorStyle.Render("Fehler: " + m.err.Error())
	case m.mode == modeDetail && m.current != nil:
		left = tester.Summary(m.current)
	default:
		left = fmt.Sprintf("%d Testläufe", len(m.runs))
	}

	right := HelpDescStyle.Render("v" + version.Tester)
	if m.failedOnly {
		right = FailStyle.Render("[nur Fehler]") + "  " + right
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if padding < 2 {
		padding = 2
	}
	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) renderHelpBar() string {
	var items []string
	if m.mode == modeRuns {
		items = []string{
			RenderKeyHint("↑/↓", "Auswahl"),
			RenderKeyHint("Enter", "Details"),
		}
	} else {
		items = []string{
			RenderKeyHint("Esc", "Zurück"),
			RenderKeyHint("f", "Nur Fehler"),
		}
	}
	items = append(items,
		RenderKeyHint("r", "Refresh"),
		RenderKeyHint("g/G", "Top/Bottom"),
		RenderKeyHint("q", "Beenden"),
	)
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent renders the run list or the current run
func (m *Model) updateViewportContent() {
	if m.mode == modeDetail && m.current != nil {
		m.viewport.SetContent(renderRun(m.current, m.failedOnly))
		return
	}
	m.viewport.SetContent(renderRuns(m.runs, m.selected))
}

func (m *Model) keepSelectionVisible() {
	if m.mode != modeRuns {
		return
	}
	switch {
	case m.selected < m.viewport.YOffset:
		m.viewport.SetYOffset(m.selected)
	case m.selected >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
	}
}

func renderRuns(runs []store.RunSummary, selected int) string {
	if len(runs) == 0 {
		return DetailStyle.Render("Keine gespeicherten Testläufe")
	}

	var b strings.Builder
	for i, run := range runs {
		line := fmt.Sprintf("%s  %s  %d/%d  %s",
			shortID(run.ID),
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Passed, run.Total,
			run.Directory,
		)
		if i == selected {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderRun(run *tester.Run, failedOnly bool) string {
	var b strings.Builder
	for _, res := range run.Results {
		if failedOnly && res.Passed {
			continue
		}
		name := res.Name
		if res.Directory != "" && res.Directory != "." {
			name = res.Directory + "/" + res.Name
		}
		fmt.Fprintf(&b, "%s %s  rc %d/%d  %s\n",
			RenderVerdict(res.Passed), name, res.ActualRC, res.ExpectedRC,
			res.Duration.Round(time.Microsecond))
		if !res.Passed && res.Details != "" {
			b.WriteString("     " + DetailStyle.Render(res.Details) + "\n")
		}
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// loadRuns loads the run list from the store
func (m Model) loadRuns() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runs, err := m.source.ListRuns(ctx, m.limit)
	return runsLoadedMsg{runs: runs, err: err}
}

// loadRun loads one run with its results
func (m Model) loadRun(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		run, err := m.source.GetRun(ctx, id)
		return runLoadedMsg{run: run, err: err}
	}
}

// Run starts the ResultViewer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
