// Package cli implements the promptsplit command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// app holds state shared by subcommands of one root command.
type app struct {
	logLevel string
	logger   *slog.Logger
}

// NewRootCmd returns the promptsplit root command with all subcommands attached.
// Each call builds an independent command tree, so tests can run several in parallel.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "promptsplit",
		Short: "Pack text fragments into prompts that fit a token limit",
		Long: `promptsplit groups ordered text fragments into as few prompts as possible.
Each prompt is a template rendered over a contiguous run of fragments and must
cost no more than a limit under a counter (runes, bytes or a tokenizer).

Example usage:
  promptsplit split --counter cl100k_base --max-count 4000 notes.txt
  promptsplit split --manifest summarize.yaml --by paragraph "docs/**/*.md"
  promptsplit count --counter gpt-4 prompt.txt`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.AddCommand(newSplitCmd(a), newCountCmd(a))
	return root
}
