package tokencount

import (
	"context"
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/skosovsky/promptsplit"
)

// Ensures BPE implements promptsplit.Counter.
var _ promptsplit.Counter = (*BPE)(nil)

// BPE counts tokens with github.com/pkoukk/tiktoken-go. Vocabularies are downloaded on first
// use and cached in TIKTOKEN_CACHE_DIR; prefer Tiktoken when the process has no network access.
type BPE struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewBPE returns a counter for a model name or an encoding name, model names first.
// Unknown names fail without network access and wrap ErrUnknownEncoding.
func NewBPE(name string) (*BPE, error) {
	enc, err := tiktoken.EncodingForModel(name)
	if err != nil {
		enc, err = tiktoken.GetEncoding(name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownEncoding, name, err)
	}
	return &BPE{name: name, enc: enc}, nil
}

// Count returns the number of BPE tokens in text. Special tokens are counted as plain text.
func (b *BPE) Count(_ context.Context, text string) (int, error) {
	return len(b.enc.Encode(text, nil, nil)), nil
}
