package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skosovsky/promptsplit/tokencount"
)

func newCountCmd(_ *app) *cobra.Command {
	var counter string
	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "Print the count of a whole input",
		Long: `Count reads a file (or stdin) and prints its cost under --counter.
Use it to pick a --max-count or to check a rendered prompt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := stdinName
			if len(args) == 1 {
				name = args[0]
			}
			c, err := tokencount.ByName(counter)
			if err != nil {
				return err
			}
			text, err := readInput(name, cmd.InOrStdin())
			if err != nil {
				return err
			}
			n, err := c.Count(cmd.Context(), text)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
	cmd.Flags().StringVar(&counter, "counter", "", "counter name (default estimate, 4 chars per token)")
	return cmd
}
