package tokencount

import (
	"context"
	"errors"
	"fmt"

	"github.com/tiktoken-go/tokenizer"

	"github.com/skosovsky/promptsplit"
)

// Ensures Tiktoken implements promptsplit.Counter.
var _ promptsplit.Counter = (*Tiktoken)(nil)

// Tiktoken counts tokens with the BPE vocabularies embedded in github.com/tiktoken-go/tokenizer.
// No network access is needed.
type Tiktoken struct {
	name  string
	codec tokenizer.Codec
}

// NewTiktoken returns a counter for a model name (e.g. "gpt-4") or an encoding name
// (e.g. "cl100k_base", "p50k_base"). Model names are looked up first.
// Returns an error wrapping ErrUnknownEncoding that names the input when neither matches.
func NewTiktoken(name string) (*Tiktoken, error) {
	codec, err := tokenizer.ForModel(tokenizer.Model(name))
	if err == nil {
		return &Tiktoken{name: name, codec: codec}, nil
	}
	if !errors.Is(err, tokenizer.ErrModelNotSupported) {
		return nil, fmt.Errorf("tokencount: model %q: %w", name, err)
	}
	codec, err = tokenizer.Get(tokenizer.Encoding(name))
	if err != nil {
		if errors.Is(err, tokenizer.ErrEncodingNotSupported) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
		}
		return nil, fmt.Errorf("tokencount: encoding %q: %w", name, err)
	}
	return &Tiktoken{name: name, codec: codec}, nil
}

// Count returns the number of BPE tokens in text.
func (t *Tiktoken) Count(_ context.Context, text string) (int, error) {
	ids, _, err := t.codec.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrEncodeFailed, t.name, err)
	}
	return len(ids), nil
}

// Encoding returns the name of the resolved encoding (e.g. "cl100k_base").
func (t *Tiktoken) Encoding() string { return t.codec.GetName() }
