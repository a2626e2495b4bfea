// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     cmd
// Description: Root command, configuration and logger setup of ippc
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/translator"
	"github.com/msto63/ippcode/pkg/core/config"
	"github.com/msto63/ippcode/pkg/core/logging"
)

// app carries the state shared by all subcommands of one invocation
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *logging.Logger
}

// NewRootCmd builds the complete command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ippc",
		Short: "IPPcode18 Werkzeugkette",
		Long: `ippc übersetzt Quelltexte der Sprache IPPcode18 in ihre XML-Darstellung
und prüft Testverzeichnisse gegen die erwarteten Rückgabecodes.

Befehle:
  parse    - Quelltext nach XML übersetzen
  tokens   - Tokenstrom eines Quelltextes ausgeben
  test     - Testfälle eines Verzeichnisses ausführen
  results  - Gespeicherte Testläufe anzeigen
  serve    - Übersetzungsdienst per gRPC anbieten

Rückgabecodes:
  0   Erfolg
  10  Fehlender oder ungültiger Parameter
  11  Eingabedatei nicht lesbar
  12  Ausgabedatei nicht schreibbar
  21  Lexikalischer oder syntaktischer Fehler
  99  Interner Fehler`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config-Datei (default: $IPPC_CONFIG oder ./configs/ippc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose Output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return ippcerr.Wrap(err, "ungültiger Parameter").
			WithCode(ippcerr.CodeInvalidParameter)
	})

	rootCmd.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newTestCmd(a),
		newResultsCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs ippc with the process arguments and returns the exit code
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes one invocation with explicit streams
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ippcerr.ExitSuccess
	}
	printError(stderr, err)
	return exitCode(err)
}

// exitCode maps err onto the process exit code. Errors without a code
// come from cobra's own argument handling.
func exitCode(err error) int {
	if _, ok := ippcerr.As(err); !ok {
		return ippcerr.ExitParameter
	}
	return ippcerr.ExitCode(err)
}

// setup loads the configuration and creates the stderr logger
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level := a.cfg.General.LogLevel
	if a.verbose && level != "debug" && level != "trace" {
		level = "info"
	}

	a.logger = logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: "ippc",
		Level:       level,
		Format:      a.cfg.General.LogFormat,
		Output:      cmd.ErrOrStderr(),
	}), "ippc")

	a.logger.Debug("Configuration loaded", "config", a.cfgFile, "command", cmd.Name())
	return nil
}

// translator creates the local translation service from the output settings
func (a *app) translator() (*translator.Service, error) {
	return translator.NewService(translator.Config{
		Indent:   a.cfg.Output.Indent,
		Language: a.cfg.Output.Language,
		Logger:   a.logger,
	})
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Fehler: %v\n", err)
}
