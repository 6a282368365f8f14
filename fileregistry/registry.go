package fileregistry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/skosovsky/promptsplit"
	"github.com/skosovsky/promptsplit/manifest"
)

// Ensures Registry implements promptsplit.Registry.
var _ promptsplit.Registry = (*Registry)(nil)

// extensions are tried in order for each candidate file name.
var extensions = []string{".yaml", ".yml", ".toml"}

// Registry loads splitters from manifest files (lazy, cached).
type Registry struct {
	dir      string
	manifest []manifest.Option
	mu       sync.RWMutex
	cache    map[string]*promptsplit.Splitter
}

// New creates a Registry that reads manifests from dir.
func New(dir string, opts ...Option) *Registry {
	r := &Registry{
		dir:   dir,
		cache: make(map[string]*promptsplit.Splitter),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Option configures a Registry.
type Option func(*Registry)

// WithManifestOptions sets options used when building each manifest (e.g. a counter resolver).
func WithManifestOptions(opts ...manifest.Option) Option {
	return func(r *Registry) { r.manifest = append(r.manifest, opts...) }
}

// GetSplitter returns a splitter by name and env. Lazy-loads and caches.
// Returns an error wrapping promptsplit.ErrTemplateNotFound when no file matches.
func (r *Registry) GetSplitter(ctx context.Context, name, env string) (*promptsplit.Splitter, error) {
	if err := promptsplit.ValidateName(name, env); err != nil {
		return nil, err
	}
	key := name + ":" + env
	r.mu.RLock()
	s, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok = r.cache[key]; ok {
		return s, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bases := []string{name}
	if env != "" {
		bases = []string{name + "." + env, name}
	}
	for _, base := range bases {
		for _, ext := range extensions {
			s, err := manifest.ParseFile(filepath.Join(r.dir, base+ext), r.manifest...)
			if err == nil {
				s = s.InEnvironment(env)
				r.cache[key] = s
				return s, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", promptsplit.ErrTemplateNotFound, name)
}

// Reload clears the cache (for hot-reload in development).
func (r *Registry) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*promptsplit.Splitter)
}
