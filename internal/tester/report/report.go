package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/tester"
)

// Format selects the report rendering
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses a report format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", ippcerr.Newf("unknown report format %q", s).
			WithCode(ippcerr.CodeInvalidParameter)
	}
}

// Options controls the text report
type Options struct {
	Verbose bool // list passed cases too
}

// Write renders run to w in the given format
func Write(w io.Writer, run *tester.Run, format Format, opts Options) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}
	_, err := io.WriteString(w, Render(run, NewStyles(lipgloss.NewRenderer(w)), opts))
	return err
}

// Render returns the text report. Every failed case is listed with its
// expected and actual return code, followed by the summary line.
func Render(run *tester.Run, s Styles, opts Options) string {
	var b strings.Builder

	b.WriteString(s.Title.Render(fmt.Sprintf("Testlauf %s", run.ID)))
	b.WriteString("\n")
	b.WriteString(s.Label.Render(fmt.Sprintf("Verzeichnis: %s", run.Directory)))
	b.WriteString("\n\n")

	for _, res := range run.Results {
		if res.Passed {
			if opts.Verbose {
				b.WriteString(s.Passed.Render("PASS"))
				b.WriteString(" " + caseID(res) + "\n")
			}
			continue
		}

		b.WriteString(s.Case.Render(caseID(res) + ":"))
		b.WriteString("\n")
		b.WriteString(s.Failure.Render(res.Failure.Describe()))
		b.WriteString("\n")
		if res.Failure != tester.FailureCaseError {
			b.WriteString(s.Label.Render("Expected: "))
			b.WriteString(fmt.Sprintf("%d\n", res.ExpectedRC))
			b.WriteString(s.Label.Render("Actual: "))
			b.WriteString(fmt.Sprintf("%d\n", res.ActualRC))
		}
		if res.Details != "" {
			b.WriteString(s.Details.Render(res.Details))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	summary := tester.Summary(run)
	if run.Passed() == run.Total() {
		b.WriteString(s.Passed.Render(summary))
	} else {
		b.WriteString(s.Failed.Render(summary))
	}
	b.WriteString("\n")
	return b.String()
}

func caseID(res tester.Result) string {
	if res.Directory == "" || res.Directory == "." {
		return res.Name
	}
	return res.Directory + "/" + res.Name
}
