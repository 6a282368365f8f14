package promptsplit

import (
	"fmt"
	"log/slog"
)

// Option configures a Splitter (functional options pattern).
type Option func(*Splitter)

// WithSearch sets how the packer finds the end of each group. Default is SearchLinear.
func WithSearch(search Search) Option {
	return func(s *Splitter) {
		s.search = search
	}
}

// WithLogger sets the logger for debug records about closed groups. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Splitter) {
		s.logger = logger
	}
}

// WithMetadata sets splitter metadata for observability.
func WithMetadata(meta Metadata) Option {
	return func(s *Splitter) {
		s.meta = meta
	}
}

// Search selects the boundary search used when extending a group.
type Search int

const (
	// SearchLinear tries end = start+1, start+2, ... and stops at the first overflow.
	// One render and count per tried boundary.
	SearchLinear Search = iota
	// SearchBinary bisects the end boundary. It needs O(log n) counts per group
	// but is only correct when the count grows with the range (see Counter).
	SearchBinary
)

// String returns the manifest spelling of s.
func (s Search) String() string {
	switch s {
	case SearchLinear:
		return "linear"
	case SearchBinary:
		return "binary"
	default:
		return fmt.Sprintf("Search(%d)", int(s))
	}
}

// ParseSearch parses "linear" or "binary". Empty string means SearchLinear.
func ParseSearch(name string) (Search, error) {
	switch name {
	case "", "linear":
		return SearchLinear, nil
	case "binary":
		return SearchBinary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSearch, name)
	}
}
