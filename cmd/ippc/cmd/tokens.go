package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/ippcode/internal/translator"
)

func newTokensCmd(a *app) *cobra.Command {
	var src string

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Gibt den Tokenstrom eines Quelltextes aus",
		Long: `Gibt jedes Token des Quelltextes mit Zeilennummer aus. Bei Operanden
wird zusätzlich die Position innerhalb der Instruktion angezeigt.

Bei einem Fehler werden die bis dahin gelesenen Token ausgegeben und
der Fehler gemeldet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, src)
			if err != nil {
				return err
			}
			defer closeIn()

			svc, err := a.translator()
			if err != nil {
				return err
			}

			tokens, err := svc.Tokens(cmd.Context(), in)
			printTokens(cmd.OutOrStdout(), tokens)
			return err
		},
	}

	cmd.Flags().StringVarP(&src, "src", "s", "", "Quelltextdatei (default: Standardeingabe)")
	return cmd
}

func printTokens(w io.Writer, tokens []translator.TokenInfo) {
	for _, t := range tokens {
		line := fmt.Sprintf("%4d  %-7s %s", t.Line, t.Token.Kind, t.Token.Data)
		if t.Position > 0 {
			line += fmt.Sprintf(" [%d]", t.Position)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
