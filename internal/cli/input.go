package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// stdinName stands for standard input in input lists.
const stdinName = "-"

// Fragment modes for --by.
const (
	byLine      = "line"
	byParagraph = "paragraph"
)

// expandInputs resolves args to input names. Arguments with glob metacharacters are
// expanded with doublestar (so "**" matches across directories); others are kept as is.
// No args means standard input. Standard input can be named only once.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{stdinName}, nil
	}
	var out []string
	stdin := false
	for _, arg := range args {
		if arg == stdinName {
			if stdin {
				return nil, fmt.Errorf("stdin (%s) given more than once", stdinName)
			}
			stdin = true
			out = append(out, arg)
			continue
		}
		if !strings.ContainsAny(arg, "*?[{") {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		files := matches[:0]
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		slices.Sort(files)
		out = append(out, files...)
	}
	return out, nil
}

// readInput reads a file, or stdin for "-".
func readInput(name string, stdin io.Reader) (string, error) {
	if name == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name) // #nosec G304 -- path comes from the command line
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// fragments cuts text into lines or blank-line separated paragraphs.
// Blank lines never become fragments; paragraph lines are joined with "\n".
func fragments(text, by string) ([]string, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	switch by {
	case byLine:
		for _, l := range lines {
			if strings.TrimSpace(l) != "" {
				out = append(out, l)
			}
		}
	case byParagraph:
		var para []string
		for _, l := range lines {
			if strings.TrimSpace(l) == "" {
				if len(para) > 0 {
					out = append(out, strings.Join(para, "\n"))
					para = para[:0]
				}
				continue
			}
			para = append(para, l)
		}
		if len(para) > 0 {
			out = append(out, strings.Join(para, "\n"))
		}
	default:
		return nil, fmt.Errorf("invalid --by %q: want %q or %q", by, byLine, byParagraph)
	}
	return out, nil
}
