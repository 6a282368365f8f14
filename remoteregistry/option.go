package remoteregistry

import (
	"log/slog"
	"time"

	"github.com/skosovsky/promptsplit/manifest"
)

// Option configures a Registry (functional options pattern).
type Option func(*Registry)

// WithTTL sets the cache TTL. Splitters are refetched after this duration.
// Default is 5 minutes. TTL <= 0 means entries never expire (infinite cache).
// To disable caching, use a very short TTL (e.g. 1 nanosecond).
func WithTTL(d time.Duration) Option {
	return func(r *Registry) {
		r.ttl = d
	}
}

// WithManifestOptions sets options used when building each fetched manifest.
func WithManifestOptions(opts ...manifest.Option) Option {
	return func(r *Registry) {
		r.manifest = append(r.manifest, opts...)
	}
}

// WithLogger sets the logger for debug records about fetches. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}
