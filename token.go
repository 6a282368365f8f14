package promptsplit

import (
	"context"
	"unicode/utf8"
)

// RuneCounter counts runes. Useful when the limit is in characters.
type RuneCounter struct{}

// Count returns the number of runes in text.
func (RuneCounter) Count(_ context.Context, text string) (int, error) {
	return utf8.RuneCountInString(text), nil
}

// ByteCounter counts UTF-8 bytes.
type ByteCounter struct{}

// Count returns len(text).
func (ByteCounter) Count(_ context.Context, text string) (int, error) {
	return len(text), nil
}

// CharFallbackCounter estimates tokens as runes/CharsPerToken.
// Callers can plug in an exact tokenizer (see package tokencount); this one needs no vocabulary.
// Zero value uses 4 chars per token (English average).
type CharFallbackCounter struct {
	CharsPerToken int
}

// Count returns estimated token count: ceil(rune_count / CharsPerToken).
// If CharsPerToken <= 0, uses 4.
func (c *CharFallbackCounter) Count(_ context.Context, text string) (int, error) {
	cpt := c.CharsPerToken
	if cpt <= 0 {
		cpt = 4
	}
	n := utf8.RuneCountInString(text)
	return (n + cpt - 1) / cpt, nil
}

var (
	_ Counter = RuneCounter{}
	_ Counter = ByteCounter{}
	_ Counter = (*CharFallbackCounter)(nil)
)
