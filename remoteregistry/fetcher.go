package remoteregistry

import (
	"context"

	"github.com/skosovsky/promptsplit/manifest"
)

// Document is a raw manifest and the format it is written in.
type Document struct {
	Data   []byte
	Format manifest.Format
}

// Fetcher fetches a raw manifest by name and env.
// Registry uses it to obtain manifest content; HTTPFetcher is the bundled implementation.
//
// Return an error wrapping ErrNotFound when no manifest exists; Registry translates it to
// promptsplit.ErrTemplateNotFound. Wrap other errors in ErrFetchFailed so callers can use errors.Is.
type Fetcher interface {
	Fetch(ctx context.Context, name, env string) (Document, error)
}

// FetcherFunc adapts an ordinary function to Fetcher.
type FetcherFunc func(ctx context.Context, name, env string) (Document, error)

// Fetch calls f(ctx, name, env).
func (f FetcherFunc) Fetch(ctx context.Context, name, env string) (Document, error) {
	return f(ctx, name, env)
}

// candidateExtensions are tried in order for each base name.
var candidateExtensions = []string{".yaml", ".yml", ".toml"}

// CandidatePaths returns manifest file names in resolution order:
// name.env.{yaml,yml,toml} when env is set, then name.{yaml,yml,toml}.
// Call promptsplit.ValidateName before using the result in paths or URLs.
func CandidatePaths(name, env string) []string {
	bases := []string{name}
	if env != "" {
		bases = []string{name + "." + env, name}
	}
	out := make([]string, 0, len(bases)*len(candidateExtensions))
	for _, base := range bases {
		for _, ext := range candidateExtensions {
			out = append(out, base+ext)
		}
	}
	return out
}
