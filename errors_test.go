package promptsplit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextTooLongError_Error(t *testing.T) {
	t.Parallel()
	err := &TextTooLongError{Index: 3, Count: 12, MaxCount: 10}
	assert.Equal(t, "promptsplit: texts[3] is too long: count 12 exceeds max 10", err.Error())
}

func TestTextTooLongError_errorsAs(t *testing.T) {
	t.Parallel()
	outer := fmt.Errorf("outer: %w", &TextTooLongError{Index: 1, Count: 2, MaxCount: 1})
	var tooLong *TextTooLongError
	require.ErrorAs(t, outer, &tooLong)
	assert.Equal(t, 1, tooLong.Index)
	assert.ErrorIs(t, outer, ErrTextTooLong)
}

func TestVariableError_Unwrap(t *testing.T) {
	t.Parallel()
	err := &VariableError{Variable: "lang", Err: ErrMissingVariable}
	require.ErrorIs(t, err, ErrMissingVariable)
	assert.Contains(t, err.Error(), "lang")
	assert.Contains(t, err.Error(), "promptsplit:")
	assert.Equal(t, ErrMissingVariable, errors.Unwrap(err))
}

func TestSentinelErrors_Is(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"too long", ErrTextTooLong, ErrTextTooLong, true},
		{"invalid max", ErrInvalidMaxCount, ErrInvalidMaxCount, true},
		{"template parse", ErrTemplateParse, ErrTemplateParse, true},
		{"template not found", ErrTemplateNotFound, ErrTemplateNotFound, true},
		{"invalid manifest", ErrInvalidManifest, ErrInvalidManifest, true},
		{"invalid name", ErrInvalidName, ErrInvalidName, true},
		{"wrapped render", fmt.Errorf("wrap: %w", ErrTemplateRender), ErrTemplateRender, true},
		{"typed too long", &TextTooLongError{}, ErrTextTooLong, true},
		{"wrong target", ErrTextTooLong, ErrInvalidMaxCount, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}
