// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     cmd
// Description: parse command, translates IPPcode18 source to XML
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/server"
	coreGrpc "github.com/msto63/ippcode/pkg/core/grpc"
	"github.com/msto63/ippcode/pkg/ippcode/stats"
)

type parseOptions struct {
	src       string
	out       string
	statsFile string
	server    string

	// metrics in the order --loc and --comments were given
	metrics []stats.Metric
}

// metricFlag is a boolean flag that records its position relative to
// the other statistics flags
type metricFlag struct {
	metric  stats.Metric
	metrics *[]stats.Metric
}

var _ pflag.Value = (*metricFlag)(nil)

func (f *metricFlag) String() string {
	return strconv.FormatBool(f.index() >= 0)
}

func (f *metricFlag) Type() string { return "bool" }

func (f *metricFlag) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	i := f.index()
	switch {
	case on && i < 0:
		*f.metrics = append(*f.metrics, f.metric)
	case !on && i >= 0:
		*f.metrics = append((*f.metrics)[:i], (*f.metrics)[i+1:]...)
	}
	return nil
}

func (f *metricFlag) index() int {
	for i, m := range *f.metrics {
		if m == f.metric {
			return i
		}
	}
	return -1
}

func newParseCmd(a *app) *cobra.Command {
	o := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Übersetzt IPPcode18 nach XML",
		Long: `Liest einen IPPcode18-Quelltext, prüft ihn lexikalisch und syntaktisch
und gibt die XML-Darstellung des Programms aus.

Ohne --src wird von der Standardeingabe gelesen, ohne --out auf die
Standardausgabe geschrieben. Mit --stats wird eine Statistikdatei
erzeugt; die Zeilen erscheinen in der Reihenfolge von --loc und
--comments auf der Kommandozeile.

Beispiele:
  ippc parse < prog.src > prog.xml
  ippc parse --src prog.src --out prog.xml
  ippc parse -s prog.src --stats stats.txt --comments --loc
  ippc parse -s prog.src --server localhost:9180`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, a)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.src, "src", "s", "", "Quelltextdatei (default: Standardeingabe)")
	f.StringVarP(&o.out, "out", "o", "", "Ausgabedatei (default: Standardausgabe)")
	f.StringVar(&o.statsFile, "stats", "", "Statistikdatei")
	f.StringVar(&o.server, "server", "", "Adresse eines ippc-Servers statt lokaler Übersetzung")

	loc := f.VarPF(&metricFlag{metric: stats.MetricLinesOfCode, metrics: &o.metrics},
		"loc", "l", "Anzahl der Zeilen mit Instruktionen in die Statistik schreiben")
	loc.NoOptDefVal = "true"
	comments := f.VarPF(&metricFlag{metric: stats.MetricComments, metrics: &o.metrics},
		"comments", "c", "Anzahl der Kommentare in die Statistik schreiben")
	comments.NoOptDefVal = "true"

	return cmd
}

// translation is what both the local and the remote path produce
type translation struct {
	xml   string
	stats stats.Source
}

func (o *parseOptions) run(cmd *cobra.Command, a *app) error {
	if len(o.metrics) > 0 && o.statsFile == "" {
		return ippcerr.New("--loc und --comments erfordern --stats").
			WithCode(ippcerr.CodeInvalidParameter)
	}

	in, closeIn, err := openInput(cmd, o.src)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(cmd, o.out)
	if err != nil {
		return err
	}
	defer closeOut()

	var t *translation
	if o.server != "" {
		t, err = o.translateRemote(cmd.Context(), a, in)
	} else {
		t, err = o.translateLocal(cmd.Context(), a, in)
	}
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, t.xml); err != nil {
		return ippcerr.Wrap(err, "Ausgabe fehlgeschlagen").
			WithCode(ippcerr.CodeOutputOpen).
			WithDetail("file", o.out)
	}

	if o.statsFile != "" {
		return writeStats(o.statsFile, t.stats, o.metrics)
	}
	return nil
}

func (o *parseOptions) translateLocal(ctx context.Context, a *app, in io.Reader) (*translation, error) {
	svc, err := a.translator()
	if err != nil {
		return nil, err
	}

	res, err := svc.Translate(ctx, in)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Source translated",
		"instructions", res.Instructions,
		"loc", res.Stats.LinesOfCode(),
		"comments", res.Stats.Comments(),
		"duration", res.Duration,
	)
	return &translation{xml: res.XML, stats: res.Stats}, nil
}

func (o *parseOptions) translateRemote(ctx context.Context, a *app, in io.Reader) (*translation, error) {
	source, err := io.ReadAll(in)
	if err != nil {
		return nil, ippcerr.Wrap(err, "Eingabe nicht lesbar").
			WithCode(ippcerr.CodeInputOpen)
	}

	cfg := coreGrpc.DefaultClientConfig(o.server)
	cfg.Logger = a.logger
	client, err := server.Dial(cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	res, err := client.Translate(ctx, string(source))
	if err != nil {
		return nil, err
	}

	a.logger.Info("Source translated remotely",
		"server", o.server,
		"instructions", res.Instructions,
	)
	return &translation{xml: res.XML, stats: res}, nil
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ippcerr.Wrap(err, "Eingabedatei nicht lesbar").
			WithCode(ippcerr.CodeInputOpen).
			WithDetail("file", path)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, ippcerr.Wrap(err, "Ausgabedatei nicht schreibbar").
			WithCode(ippcerr.CodeOutputOpen).
			WithDetail("file", path)
	}
	return f, func() { f.Close() }, nil
}

func writeStats(path string, src stats.Source, metrics []stats.Metric) error {
	f, err := os.Create(path)
	if err != nil {
		return ippcerr.Wrap(err, "Statistikdatei nicht schreibbar").
			WithCode(ippcerr.CodeOutputOpen).
			WithDetail("file", path)
	}
	defer f.Close()

	if err := stats.Write(f, src, metrics); err != nil {
		return ippcerr.Wrap(err, "Statistik fehlgeschlagen").
			WithCode(ippcerr.CodeOutputOpen).
			WithDetail("file", path)
	}
	return nil
}
