package tokencount

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/skosovsky/promptsplit"
)

// Ensures Gemini implements promptsplit.Counter.
var _ promptsplit.Counter = (*Gemini)(nil)

// Gemini counts tokens with the Gemini countTokens API. Every Count is a network call.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini returns a counter for model using client. Panics if client is nil.
func NewGemini(client *genai.Client, model string) *Gemini {
	if client == nil {
		panic("tokencount: genai client must not be nil")
	}
	return &Gemini{client: client, model: model}
}

// Count returns TotalTokens reported by the API. API errors wrap ErrCountFailed.
func (g *Gemini) Count(ctx context.Context, text string) (int, error) {
	resp, err := g.client.Models.CountTokens(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: gemini %s: %w", ErrCountFailed, g.model, err)
	}
	return int(resp.TotalTokens), nil
}
