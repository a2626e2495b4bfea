// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     cmd
// Description: results command, browses stored test runs
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/tester/report"
	"github.com/msto63/ippcode/internal/tester/store"
	"github.com/msto63/ippcode/internal/tui/resultviewer"
)

type resultsOptions struct {
	history string
	limit   int
	list    bool
	runID   string
	prune   time.Duration
}

func newResultsCmd(a *app) *cobra.Command {
	o := &resultsOptions{}

	cmd := &cobra.Command{
		Use:     "results",
		Aliases: []string{"history"},
		Short:   "Zeigt gespeicherte Testläufe an",
		Long: `Startet den interaktiven Ergebnis-Viewer für gespeicherte Testläufe.

Tastenkuerzel:
  ↑/k ↓/j     Testlauf auswählen
  Enter       Details anzeigen
  Esc         Zurück zur Liste
  f           Nur fehlgeschlagene Tests
  r           Neu laden
  g / G       Zum Anfang / Ende springen
  PgUp/PgDn   Scrollen
  q / Ctrl+C  Beenden

Mit --list oder --run wird ohne Terminal-UI auf die Standardausgabe
geschrieben.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, a)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.history, "history", "", "Datenbank für Testläufe (default: tester.history_db)")
	f.IntVar(&o.limit, "limit", 100, "Maximale Anzahl angezeigter Testläufe")
	f.BoolVar(&o.list, "list", false, "Testläufe als Liste ausgeben")
	f.StringVar(&o.runID, "run", "", "Bericht eines Testlaufs ausgeben")
	f.DurationVar(&o.prune, "prune", 0, "Testläufe löschen, die älter sind als die angegebene Dauer")

	return cmd
}

func (o *resultsOptions) run(cmd *cobra.Command, a *app) error {
	path := o.history
	if path == "" {
		path = a.cfg.Tester.HistoryDB
	}
	if path == "" {
		return ippcerr.New("keine Datenbank konfiguriert (tester.history_db oder --history)").
			WithCode(ippcerr.CodeInvalidParameter)
	}

	st, err := store.Open(store.Config{Path: path})
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case o.prune > 0:
		n, err := st.Prune(ctx, o.prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d Testläufe gelöscht\n", n)
		return nil

	case o.runID != "":
		run, err := st.GetRun(ctx, o.runID)
		if err != nil {
			return err
		}
		return report.Write(out, run, report.FormatText, report.Options{Verbose: true})

	case o.list:
		runs, err := st.ListRuns(ctx, o.limit)
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %s  %d/%d  %s\n",
				r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Passed, r.Total, r.Directory)
		}
		return nil
	}

	a.logger.Debug("Starting result viewer", "db", path)
	return resultviewer.Run(resultviewer.Config{Source: st, Limit: o.limit})
}
