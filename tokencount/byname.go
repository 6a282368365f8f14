package tokencount

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/genai"

	"github.com/skosovsky/promptsplit"
)

// ByName resolves a counter name as used in manifests and CLI flags:
//
//	""               CharFallbackCounter (4 chars per token)
//	"estimate"       CharFallbackCounter
//	"runes", "chars" RuneCounter
//	"bytes"          ByteCounter
//	"bpe:<name>"     NewBPE(name)
//	"anthropic:<m>"  NewAnthropic with a client configured from ANTHROPIC_API_KEY
//	"gemini:<m>"     NewGemini with a client configured from GEMINI_API_KEY / GOOGLE_API_KEY
//	anything else    NewTiktoken(name), a model or encoding name
func ByName(name string) (promptsplit.Counter, error) {
	switch name {
	case "", "estimate":
		return &promptsplit.CharFallbackCounter{}, nil
	case "runes", "chars":
		return promptsplit.RuneCounter{}, nil
	case "bytes":
		return promptsplit.ByteCounter{}, nil
	}
	kind, arg, ok := strings.Cut(name, ":")
	if !ok {
		return NewTiktoken(name)
	}
	if arg == "" {
		return nil, fmt.Errorf("%w: %q: missing name after %q", ErrUnknownEncoding, name, kind+":")
	}
	switch kind {
	case "bpe":
		return NewBPE(arg)
	case "anthropic":
		client := anthropic.NewClient()
		return NewAnthropic(&client, arg), nil
	case "gemini":
		// The context only bounds credential discovery.
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
		if err != nil {
			return nil, fmt.Errorf("tokencount: gemini client: %w", err)
		}
		return NewGemini(client, arg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}
