package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuptool/cuptool/internal/tql"
)

func newQueryCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "query <expression>",
		Short: "Validate a task query expression and explain how it parses",
		Long: `Parse a task query expression and print a readable description of its
operators and comparisons:

  cuptool query "status == 'open' and (priority <= 2 or 'urgent' in tags)"

Exits non-zero with the syntax error and its position when the
expression is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet {
				if _, err := tql.Parse(args[0]); err != nil {
					return err
				}
				return nil
			}

			explanation, err := tql.Explain(args[0])
			if err != nil {
				return err
			}
			fmt.Println(explanation)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only validate; print nothing on success")

	return cmd
}
