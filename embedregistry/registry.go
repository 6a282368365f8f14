package embedregistry

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/skosovsky/promptsplit"
	"github.com/skosovsky/promptsplit/manifest"
)

var _ promptsplit.Registry = (*Registry)(nil)

// Registry holds every manifest of an fs.FS, parsed at construction. No mutex: read-only after New.
type Registry struct {
	cache map[string]*promptsplit.Splitter
}

// Option configures New.
type Option func(*options)

type options struct {
	manifest []manifest.Option
}

// WithManifestOptions sets options used when building each manifest.
func WithManifestOptions(opts ...manifest.Option) Option {
	return func(o *options) { o.manifest = append(o.manifest, opts...) }
}

// New walks fsys under root, parses every .yaml, .yml and .toml file, and returns a Registry.
// "name.yaml" registers name for any env; "name.env.yaml" registers name for env only.
// The first invalid manifest fails New.
func New(fsys fs.FS, root string, opts ...Option) (*Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	r := &Registry{cache: make(map[string]*promptsplit.Splitter)}
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := manifest.FormatOf(p); !ok {
			return nil
		}
		s, err := manifest.ParseFS(fsys, p, o.manifest...)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		base := path.Base(p)
		name := strings.TrimSuffix(base, path.Ext(base))
		env := ""
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name, env = name[:idx], name[idx+1:]
		}
		if err := promptsplit.ValidateName(name, env); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		key := name + ":" + env
		if _, dup := r.cache[key]; dup {
			return fmt.Errorf("%s: %w: duplicate manifest for %q", p, promptsplit.ErrInvalidManifest, key)
		}
		r.cache[key] = s.InEnvironment(env)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GetSplitter returns a splitter by name and env.
// Prefers the env-specific manifest; falls back to the base one, reported under env.
func (r *Registry) GetSplitter(ctx context.Context, name, env string) (*promptsplit.Splitter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s, ok := r.cache[name+":"+env]; ok {
		return s, nil
	}
	if s, ok := r.cache[name+":"]; ok {
		if env == "" {
			return s, nil
		}
		return s.InEnvironment(env), nil
	}
	return nil, fmt.Errorf("%w: %q", promptsplit.ErrTemplateNotFound, name)
}

// Names returns the registered keys as "name" or "name.env", unordered.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cache))
	for key := range r.cache {
		name, env, _ := strings.Cut(key, ":")
		if env != "" {
			name += "." + env
		}
		out = append(out, name)
	}
	return out
}
