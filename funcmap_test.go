package promptsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateChars(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     string
	}{
		{"empty", "", 5, ""},
		{"ASCII under limit", "hello", 10, "hello"},
		{"ASCII exact", "hello", 5, "hello"},
		{"ASCII over", "hello world", 5, "hello"},
		{"Unicode", "привет", 3, "при"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateChars(tt.text, tt.maxChars))
		})
	}
}

func TestNumbered(t *testing.T) {
	t.Parallel()
	assert.Empty(t, numbered(nil))
	assert.Equal(t, "1. a", numbered([]string{"a"}))
	assert.Equal(t, "1. a\n2. b\n3. c", numbered([]string{"a", "b", "c"}))
}
