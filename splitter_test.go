package promptsplit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitter_Defaults(t *testing.T) {
	t.Parallel()
	tpl := Join(" ")
	s, err := NewSplitter(tpl, RuneCounter{}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, s.MaxCount())
	assert.Equal(t, SearchLinear, s.Search())
	assert.Equal(t, tpl, s.Template())
	assert.Equal(t, RuneCounter{}, s.Counter())
	assert.Equal(t, Metadata{}, s.Metadata())
}

func TestSplitter_MetadataIsCopied(t *testing.T) {
	t.Parallel()
	tags := []string{"summary"}
	s, err := NewSplitter(Join(" "), RuneCounter{}, 10, WithMetadata(Metadata{ID: "summarize", Tags: tags}))
	require.NoError(t, err)
	tags[0] = "mutated"
	meta := s.Metadata()
	assert.Equal(t, []string{"summary"}, meta.Tags)
	meta.Tags[0] = "mutated again"
	assert.Equal(t, []string{"summary"}, s.Metadata().Tags)
}

func TestSplitter_InEnvironment(t *testing.T) {
	t.Parallel()
	s, err := NewSplitter(Join(" "), RuneCounter{}, 10, WithMetadata(Metadata{ID: "summarize"}))
	require.NoError(t, err)
	prod := s.InEnvironment("production")
	assert.Equal(t, "production", prod.Metadata().Environment)
	assert.Equal(t, "summarize", prod.Metadata().ID)
	assert.Empty(t, s.Metadata().Environment)
	assert.Equal(t, s.MaxCount(), prod.MaxCount())
}

func TestSplitter_LogsClosedGroups(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := NewSplitter(Join(" "), RuneCounter{}, 3, WithLogger(logger))
	require.NoError(t, err)
	_, err = s.Split(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "promptsplit: group closed")
	assert.Contains(t, out, "start=0 end=2 count=3 max_count=3")
	assert.Contains(t, out, "start=2 end=3 count=1 max_count=3")
}

func TestParseSearch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Search
		wantErr bool
	}{
		{"", SearchLinear, false},
		{"linear", SearchLinear, false},
		{"binary", SearchBinary, false},
		{"ternary", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSearch(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSearch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "" {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
	assert.Equal(t, "Search(7)", Search(7).String())
}
