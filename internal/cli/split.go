package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/skosovsky/promptsplit"
)

// Output formats for --output.
const (
	outputText = "text"
	outputJSON = "json"
)

// groupSeparator is printed between prompts in text output.
const groupSeparator = "---"

type splitFlags struct {
	src      sourceFlags
	by       string
	jobs     int
	progress bool
	output   string
}

func newSplitCmd(a *app) *cobra.Command {
	f := &splitFlags{}
	cmd := &cobra.Command{
		Use:   "split [file|glob ...]",
		Short: "Pack the fragments of each input into prompts",
		Long: `Split reads each input, cuts it into fragments (lines or paragraphs) and packs
consecutive fragments into prompts that stay within the limit. Inputs may be files,
doublestar globs ("docs/**/*.md") or "-" for stdin; with no inputs stdin is read.

The splitter comes from --manifest, from --registry/--remote with --name,
or from the inline flags --template, --separator, --counter, --max-count and --search.

Examples:
  promptsplit split --counter cl100k_base --max-count 4000 notes.txt
  promptsplit split --manifest summarize.yaml --max-count 2000 --by paragraph "docs/**/*.md"
  promptsplit split --registry ./splitters --name summarize --env prod -o json book.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSplit(cmd, args, f)
		},
	}
	f.src.register(cmd)
	cmd.Flags().StringVar(&f.by, "by", byLine, "fragment unit: line or paragraph")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "inputs processed concurrently")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "show a progress bar on stderr")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "output format: text or json")
	return cmd
}

// fileResult is the outcome for one input, in input order.
type fileResult struct {
	File   string      `json:"file"`
	Groups []groupJSON `json:"groups"`
}

type groupJSON struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Count int    `json:"count"`
	Text  string `json:"text"`
}

func (a *app) runSplit(cmd *cobra.Command, args []string, f *splitFlags) error {
	if f.output != outputText && f.output != outputJSON {
		return fmt.Errorf("invalid --output %q: want %q or %q", f.output, outputText, outputJSON)
	}
	if f.jobs < 1 {
		return errors.New("--jobs must be at least 1")
	}
	if _, err := fragments("", f.by); err != nil {
		return err
	}
	inputs, err := expandInputs(args)
	if err != nil {
		return err
	}
	s, closeSource, err := a.splitter(cmd, &f.src)
	if err != nil {
		return err
	}
	defer func() { _ = closeSource() }()

	var bar *progressbar.ProgressBar
	if f.progress {
		bar = progressbar.NewOptions(len(inputs),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("splitting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	results := make([]fileResult, len(inputs))
	stdin := cmd.InOrStdin()
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(f.jobs)
	for i, name := range inputs {
		g.Go(func() error {
			text, err := readInput(name, stdin)
			if err != nil {
				return err
			}
			texts, err := fragments(text, f.by)
			if err != nil {
				return err
			}
			groups, err := s.SplitGroups(ctx, texts)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(name), err)
			}
			results[i] = toResult(name, groups)
			a.logger.InfoContext(ctx, "input split",
				slog.String("file", displayName(name)),
				slog.Int("fragments", len(texts)), slog.Int("prompts", len(groups)))
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return writeResults(cmd.OutOrStdout(), results, f.output)
}

func displayName(name string) string {
	if name == stdinName {
		return "stdin"
	}
	return name
}

func toResult(name string, groups []promptsplit.Group) fileResult {
	out := fileResult{File: displayName(name), Groups: make([]groupJSON, len(groups))}
	for i, g := range groups {
		out.Groups[i] = groupJSON{Start: g.Start, End: g.End, Count: g.Count, Text: g.Text}
	}
	return out
}

// writeResults prints prompts separated by "---" lines; with several inputs each
// block is headed by "==> name <==".
func writeResults(w io.Writer, results []fileResult, format string) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	var sb strings.Builder
	for fi, r := range results {
		if len(results) > 1 {
			if fi > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "==> %s <==\n", r.File)
		}
		for gi, g := range r.Groups {
			if gi > 0 {
				sb.WriteString(groupSeparator + "\n")
			}
			sb.WriteString(g.Text)
			if !strings.HasSuffix(g.Text, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
