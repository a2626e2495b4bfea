// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     cmd
// Description: test command, runs a directory of test cases
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/tester"
	"github.com/msto63/ippcode/internal/tester/report"
	"github.com/msto63/ippcode/internal/tester/store"
)

type testOptions struct {
	directory string
	recursive bool
	workers   int
	format    string
	all       bool
	history   string
	noHistory bool
}

func newTestCmd(a *app) *cobra.Command {
	o := &testOptions{}

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Führt die Testfälle eines Verzeichnisses aus",
		Long: `Sucht Testfälle (*.src) im angegebenen Verzeichnis und übersetzt jeden
Quelltext. Der Rückgabecode wird mit der zugehörigen .rc-Datei verglichen.
Fehlende .in-, .out- und .rc-Dateien werden mit Standardinhalt angelegt.

Ist tester.history_db konfiguriert oder --history gesetzt, wird der
Testlauf gespeichert und kann mit 'ippc results' angesehen werden.

Beispiele:
  ippc test                       # Aktuelles Verzeichnis
  ippc test -d tests -r           # Rekursiv ab ./tests
  ippc test -d tests --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, a)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.directory, "directory", "d", "", "Testverzeichnis (default: tester.directory)")
	f.BoolVarP(&o.recursive, "recursive", "r", false, "Unterverzeichnisse durchsuchen")
	f.IntVar(&o.workers, "workers", 4, "Anzahl paralleler Testfälle")
	f.StringVar(&o.format, "format", "text", "Ausgabeformat (text, json)")
	f.BoolVar(&o.all, "all", false, "Auch erfolgreiche Testfälle auflisten")
	f.StringVar(&o.history, "history", "", "Datenbank für Testläufe (default: tester.history_db)")
	f.BoolVar(&o.noHistory, "no-history", false, "Testlauf nicht speichern")

	return cmd
}

func (o *testOptions) run(cmd *cobra.Command, a *app) error {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return err
	}

	directory := o.directory
	if !cmd.Flags().Changed("directory") {
		directory = a.cfg.Tester.Directory
	}
	recursive := o.recursive || a.cfg.Tester.Recursive

	cases, err := tester.Discover(tester.DiscoverOptions{
		Directory: directory,
		Recursive: recursive,
		Extensions: tester.Extensions{
			Source:     a.cfg.Tester.SourceExt,
			Input:      a.cfg.Tester.InputExt,
			Output:     a.cfg.Tester.OutputExt,
			ReturnCode: a.cfg.Tester.ReturnCodeExt,
		},
	})
	if err != nil {
		return err
	}
	a.logger.Info("Test cases discovered", "directory", directory, "count", len(cases))

	svc, err := a.translator()
	if err != nil {
		return err
	}
	runner, err := tester.NewRunner(tester.RunnerConfig{
		Translator: svc,
		Logger:     a.logger,
		Workers:    o.workers,
	})
	if err != nil {
		return err
	}

	run := tester.NewRun(directory, recursive)
	if err := runner.Run(cmd.Context(), run, cases); err != nil {
		return ippcerr.Wrap(err, "Testlauf abgebrochen").
			WithCode(ippcerr.CodeInternal)
	}

	if err := report.Write(cmd.OutOrStdout(), run, format, report.Options{Verbose: o.all}); err != nil {
		return ippcerr.Wrap(err, "Bericht nicht schreibbar").
			WithCode(ippcerr.CodeOutputOpen)
	}

	return o.save(cmd, a, run)
}

// save stores the run in the history database when one is configured
func (o *testOptions) save(cmd *cobra.Command, a *app, run *tester.Run) error {
	path := o.history
	if path == "" {
		path = a.cfg.Tester.HistoryDB
	}
	if path == "" || o.noHistory {
		return nil
	}

	st, err := store.Open(store.Config{Path: path})
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveRun(cmd.Context(), run); err != nil {
		return err
	}
	a.logger.Info("Test run saved", "run", run.ID, "db", path)
	return nil
}
