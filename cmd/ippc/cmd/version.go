package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/ippcode/pkg/core/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Zeigt die Version an",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, version.String())
			fmt.Fprintf(out, "  Parser: %s\n", version.ComponentVersion("parser"))
			fmt.Fprintf(out, "  Tester: %s\n", version.ComponentVersion("tester"))
			fmt.Fprintf(out, "  Server: %s\n", version.ComponentVersion("server"))
		},
	}
}
