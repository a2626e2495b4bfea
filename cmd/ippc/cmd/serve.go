// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     cmd
// Description: serve command, runs the gRPC translation service
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host       string
		port       int
		reflection bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Startet den Übersetzungsdienst (gRPC)",
		Long: `Startet den gRPC-Dienst ippc.v1.Translator.

Der Dienst übersetzt Quelltexte wie 'ippc parse' und meldet seinen
Zustand über den Standard-Health-Service von gRPC.

Beispiele:
  ippc serve                  # localhost:9180 aus der Konfiguration
  ippc serve --port 9200
  ippc parse -s prog.src --server localhost:9180`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("reflection") {
				cfg.EnableReflection = reflection
			}

			svc, err := a.translator()
			if err != nil {
				return err
			}
			srv, err := server.New(server.Config{
				Server:     cfg,
				Translator: svc,
				Logger:     a.logger,
			})
			if err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Serve(nil)
			}()

			fmt.Fprintf(cmd.ErrOrStderr(), "ippc Übersetzungsdienst auf %s\n", cfg.Address())

			select {
			case <-sigCh:
				a.logger.Info("Shutdown signal received")
			case err := <-errCh:
				if err != nil {
					return ippcerr.Wrap(err, "Server beendet")
				}
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
			defer cancel()
			srv.Shutdown(ctx)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&host, "host", "", "Host-Adresse (default: server.host)")
	f.IntVar(&port, "port", 0, "Port (default: server.port)")
	f.BoolVar(&reflection, "reflection", false, "gRPC-Reflection aktivieren")

	return cmd
}
