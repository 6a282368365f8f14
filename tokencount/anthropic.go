package tokencount

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/skosovsky/promptsplit"
)

// Ensures Anthropic implements promptsplit.Counter.
var _ promptsplit.Counter = (*Anthropic)(nil)

// Anthropic counts tokens with the Claude token counting API (POST /v1/messages/count_tokens).
// The rendered prompt is sent as a single user message. Every Count is a network call.
type Anthropic struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropic returns a counter for model using client. Panics if client is nil.
func NewAnthropic(client *anthropic.Client, model string) *Anthropic {
	if client == nil {
		panic("tokencount: anthropic client must not be nil")
	}
	return &Anthropic{client: client, model: anthropic.Model(model)}
}

// Count returns the input token count reported by the API. Empty text is 0 without a request,
// since the API rejects empty text blocks. API errors wrap ErrCountFailed.
func (a *Anthropic) Count(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	resp, err := a.client.Messages.CountTokens(ctx, anthropic.MessageCountTokensParams{
		Model: a.model,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: anthropic %s: %w", ErrCountFailed, a.model, err)
	}
	return int(resp.InputTokens), nil
}
