package promptsplit

import (
	"errors"
	"fmt"
)

// Sentinel errors for splitting, templates and registries.
// All use prefix "promptsplit:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrTextTooLong      = errors.New("promptsplit: text does not fit the limit on its own")
	ErrInvalidMaxCount  = errors.New("promptsplit: max count must be positive")
	ErrNilTemplate      = errors.New("promptsplit: template must not be nil")
	ErrNilCounter       = errors.New("promptsplit: counter must not be nil")
	ErrInvalidSearch    = errors.New("promptsplit: unknown boundary search")
	ErrMissingVariable  = errors.New("promptsplit: template variable not provided")
	ErrTemplateParse    = errors.New("promptsplit: template parsing failed")
	ErrTemplateRender   = errors.New("promptsplit: template rendering failed")
	ErrInvalidManifest  = errors.New("promptsplit: manifest file is malformed")
	ErrTemplateNotFound = errors.New("promptsplit: splitter not found in registry")
	ErrInvalidName      = errors.New("promptsplit: invalid splitter name or env")
)

// TextTooLongError reports the first text whose solo rendering exceeds the limit.
// Use errors.Is(err, ErrTextTooLong) and errors.As(err, &tooLong) to inspect.
type TextTooLongError struct {
	Index    int // position in the input
	Count    int // Counter result for the text rendered alone
	MaxCount int
}

// Error implements error.
func (e *TextTooLongError) Error() string {
	return fmt.Sprintf("promptsplit: texts[%d] is too long: count %d exceeds max %d", e.Index, e.Count, e.MaxCount)
}

// Unwrap returns ErrTextTooLong for errors.Is.
func (e *TextTooLongError) Unwrap() error { return ErrTextTooLong }

// VariableError wraps a sentinel error with variable context.
type VariableError struct {
	Variable string
	Err      error
}

// Error implements error.
func (e *VariableError) Error() string {
	return fmt.Sprintf("promptsplit: variable %q: %v", e.Variable, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *VariableError) Unwrap() error { return e.Err }

// Compile-time checks that the error types implement error.
var (
	_ error = (*TextTooLongError)(nil)
	_ error = (*VariableError)(nil)
)
