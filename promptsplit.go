package promptsplit

import (
	"context"
	"slices"
)

// Template renders an ordered range of texts into one prompt.
// Render must return the same string for the same input; Split relies on it.
// It may be called with zero, one or many texts.
type Template interface {
	Render(texts []string) (string, error)
}

// TemplateFunc adapts an ordinary function to Template.
type TemplateFunc func(texts []string) (string, error)

// Render calls f(texts).
func (f TemplateFunc) Render(texts []string) (string, error) { return f(texts) }

// Counter measures the cost of a rendered prompt, usually in tokens.
// Extending the range of texts given to a Template must never lower the count;
// this is assumed and not checked.
type Counter interface {
	Count(ctx context.Context, text string) (int, error)
}

// CounterFunc adapts an ordinary function to Counter.
type CounterFunc func(ctx context.Context, text string) (int, error)

// Count calls f(ctx, text).
func (f CounterFunc) Count(ctx context.Context, text string) (int, error) { return f(ctx, text) }

// Group is one packed prompt: texts[Start:End] rendered through the template.
type Group struct {
	Start int    // index of the first text, inclusive
	End   int    // index after the last text
	Text  string // rendered prompt
	Count int    // Counter result for Text
}

// Len returns the number of texts in the group.
func (g Group) Len() int { return g.End - g.Start }

// Metadata holds observability metadata for a Splitter loaded from a manifest.
type Metadata struct {
	ID          string // From manifest id
	Version     string
	Description string
	Tags        []string
	Environment string // Set by registry when loading by env; not from manifest
}

func (m Metadata) clone() Metadata {
	m.Tags = slices.Clone(m.Tags)
	return m
}

// Registry returns a configured Splitter by name and environment.
type Registry interface {
	GetSplitter(ctx context.Context, name, env string) (*Splitter, error)
}
