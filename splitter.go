package promptsplit

import (
	"context"
	"fmt"
	"log/slog"
)

// Splitter bundles a template, a counter and a limit for repeated Split calls.
// Use NewSplitter to construct; it is immutable and safe for concurrent use
// when its Template and Counter are.
type Splitter struct {
	tpl      Template
	counter  Counter
	maxCount int
	search   Search
	logger   *slog.Logger
	meta     Metadata
}

// NewSplitter validates the arguments and applies options.
// Returns ErrNilTemplate, ErrNilCounter, ErrInvalidMaxCount or ErrInvalidSearch.
func NewSplitter(tpl Template, counter Counter, maxCount int, opts ...Option) (*Splitter, error) {
	if tpl == nil {
		return nil, ErrNilTemplate
	}
	if counter == nil {
		return nil, ErrNilCounter
	}
	if maxCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxCount, maxCount)
	}
	s := &Splitter{
		tpl:      tpl,
		counter:  counter,
		maxCount: maxCount,
		search:   SearchLinear,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.search != SearchLinear && s.search != SearchBinary {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSearch, s.search)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.meta = s.meta.clone()
	return s, nil
}

// Split packs texts into rendered prompts. See the package-level Split.
func (s *Splitter) Split(ctx context.Context, texts []string) ([]string, error) {
	groups, err := s.SplitGroups(ctx, texts)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Text
	}
	return out, nil
}

// SplitGroups validates every text, then packs. No groups are returned on error.
func (s *Splitter) SplitGroups(ctx context.Context, texts []string) ([]Group, error) {
	if err := s.checkTextLength(ctx, texts); err != nil {
		return nil, err
	}
	return s.pack(ctx, texts)
}

// MaxCount returns the limit each prompt must respect.
func (s *Splitter) MaxCount() int { return s.maxCount }

// Search returns the configured boundary search.
func (s *Splitter) Search() Search { return s.search }

// Template returns the template prompts are rendered with.
func (s *Splitter) Template() Template { return s.tpl }

// Counter returns the counter prompts are measured with.
func (s *Splitter) Counter() Counter { return s.counter }

// Metadata returns a copy of the splitter metadata.
func (s *Splitter) Metadata() Metadata { return s.meta.clone() }

// InEnvironment returns a copy of s whose Metadata.Environment is env.
// Registries use it to record which environment a splitter was loaded for.
func (s *Splitter) InEnvironment(env string) *Splitter {
	out := *s
	out.meta = s.meta.clone()
	out.meta.Environment = env
	return &out
}
