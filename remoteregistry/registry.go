package remoteregistry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/skosovsky/promptsplit"
	"github.com/skosovsky/promptsplit/manifest"
)

const defaultTTL = 5 * time.Minute

// detachCancel returns a context that is not cancelled when parent is cancelled,
// but still respects parent's deadline so shared fetches do not hang.
// The caller should call the returned cancel when done to release the deadline timer.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx)
}

// Ensures Registry implements promptsplit.Registry.
var _ promptsplit.Registry = (*Registry)(nil)

type cacheEntry struct {
	s         *promptsplit.Splitter
	expiresAt time.Time
}

// valid reports whether the entry is still valid at the given time.
func (r *Registry) valid(ent *cacheEntry, now time.Time) bool {
	return r.ttl <= 0 || now.Before(ent.expiresAt)
}

// Registry loads splitters via a Fetcher and caches them with TTL.
type Registry struct {
	fetcher  Fetcher
	ttl      time.Duration
	manifest []manifest.Option
	logger   *slog.Logger
	mu       sync.RWMutex
	cache    map[string]*cacheEntry
	sf       singleflight.Group
}

// New creates a Registry that uses the given Fetcher. Options (e.g. WithTTL) configure cache behavior.
// Panics if fetcher is nil.
func New(fetcher Fetcher, opts ...Option) *Registry {
	if fetcher == nil {
		panic("remoteregistry: Fetcher must not be nil")
	}
	r := &Registry{
		fetcher: fetcher,
		ttl:     defaultTTL,
		logger:  slog.Default(),
		cache:   make(map[string]*cacheEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetSplitter returns a splitter by name and env. Uses the TTL cache; on miss or expiry,
// fetches via Fetcher. Concurrent misses for the same key share one fetch, which is not
// cancelled when a single caller gives up.
func (r *Registry) GetSplitter(ctx context.Context, name, env string) (*promptsplit.Splitter, error) {
	if err := promptsplit.ValidateName(name, env); err != nil {
		return nil, err
	}
	key := name + ":" + env

	r.mu.RLock()
	ent, ok := r.cache[key]
	r.mu.RUnlock()
	if ok && r.valid(ent, time.Now()) {
		return ent.s, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err, _ := r.sf.Do(key, func() (any, error) {
		// A flight that finished just before this one may have filled the cache.
		r.mu.RLock()
		ent, ok := r.cache[key]
		r.mu.RUnlock()
		if ok && r.valid(ent, time.Now()) {
			return ent.s, nil
		}
		fetchCtx, cancel := detachCancel(ctx)
		defer cancel()
		doc, err := r.fetcher.Fetch(fetchCtx, name, env)
		if err != nil {
			return nil, err
		}
		m, err := manifest.Unmarshal(doc.Data, doc.Format)
		if err != nil {
			return nil, err
		}
		s, err := m.Build(r.manifest...)
		if err != nil {
			return nil, err
		}
		s = s.InEnvironment(env)
		r.logger.DebugContext(fetchCtx, "remoteregistry: manifest loaded",
			slog.String("name", name), slog.String("env", env),
			slog.String("format", string(doc.Format)), slog.Int("bytes", len(doc.Data)))

		expiresAt := time.Time{}
		if r.ttl > 0 {
			expiresAt = time.Now().Add(r.ttl)
		}
		r.mu.Lock()
		r.cache[key] = &cacheEntry{s: s, expiresAt: expiresAt}
		r.mu.Unlock()
		return s, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %q: %w", promptsplit.ErrTemplateNotFound, name, err)
		}
		return nil, err
	}
	return v.(*promptsplit.Splitter), nil
}

// Evict removes one splitter from the cache. Safe for concurrent use.
func (r *Registry) Evict(name, env string) {
	r.mu.Lock()
	delete(r.cache, name+":"+env)
	r.mu.Unlock()
}

// EvictAll clears the entire cache. Safe for concurrent use.
func (r *Registry) EvictAll() {
	r.mu.Lock()
	r.cache = make(map[string]*cacheEntry)
	r.mu.Unlock()
}

// Close calls Close on the underlying Fetcher if it implements the interface.
func (r *Registry) Close() error {
	if c, ok := r.fetcher.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
