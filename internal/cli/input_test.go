package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		by   string
		want []string
	}{
		{"lines", "a\nb\n", byLine, []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", byLine, []string{"a", "b"}},
		{"blank lines skipped", "a\n\n  \nb", byLine, []string{"a", "b"}},
		{"empty", "", byLine, []string{}},
		{"paragraphs", "a\nb\n\nc\n", byParagraph, []string{"a\nb", "c"}},
		{"paragraph runs of blanks", "\n\na\n\n\n\nb\n\n", byParagraph, []string{"a", "b"}},
		{"paragraph crlf", "a\r\nb\r\n\r\nc", byParagraph, []string{"a\nb", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fragments(tt.text, tt.by)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := fragments("a", "word")
	require.Error(t, err)
}

func TestExpandInputs(t *testing.T) {
	t.Parallel()
	got, err := expandInputs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{stdinName}, got)

	dir := t.TempDir()
	for _, p := range []string{"x/2.txt", "x/1.txt", "x/y/3.txt", "x/4.md"} {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("t"), 0o600))
	}
	got, err = expandInputs([]string{filepath.Join(dir, "x", "**", "*.txt"), "plain.txt", "-"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "x", "1.txt"),
		filepath.Join(dir, "x", "2.txt"),
		filepath.Join(dir, "x", "y", "3.txt"),
		"plain.txt",
		"-",
	}, got)

	// Directories matched by a pattern are dropped.
	_, err = expandInputs([]string{filepath.Join(dir, "x", "*")})
	require.NoError(t, err)
	_, err = expandInputs([]string{filepath.Join(dir, "x", "y*")})
	require.Error(t, err)

	_, err = expandInputs([]string{"-", "plain.txt", "-"})
	require.ErrorContains(t, err, "more than once")
}

func TestReadInput_Stdin(t *testing.T) {
	t.Parallel()
	got, err := readInput(stdinName, strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "data", got)
}
