package remoteregistry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/skosovsky/promptsplit"
	"github.com/skosovsky/promptsplit/manifest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		// Started by an init in the genai dependency chain; it never exits.
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type mockFetcher struct {
	mu     sync.Mutex
	data   map[string]Document
	fetch  func(ctx context.Context, name, env string) (Document, error)
	called int
	closed bool
}

func (m *mockFetcher) Fetch(ctx context.Context, name, env string) (Document, error) {
	m.mu.Lock()
	m.called++
	m.mu.Unlock()
	if m.fetch != nil {
		return m.fetch(ctx, name, env)
	}
	if d, ok := m.data[name+":"+env]; ok {
		return d, nil
	}
	if d, ok := m.data[name+":"]; ok {
		return d, nil
	}
	return Document{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (m *mockFetcher) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *mockFetcher) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}

func yamlDoc(s string) Document { return Document{Data: []byte(s), Format: manifest.FormatYAML} }

func TestRegistry_GetSplitter_Success(t *testing.T) {
	t.Parallel()
	m := &mockFetcher{data: map[string]Document{"summarize:": yamlDoc("id: summarize\nmax_count: 3\ncounter: runes\n")}}
	reg := New(m, WithTTL(time.Minute))
	ctx := context.Background()
	s, err := reg.GetSplitter(ctx, "summarize", "")
	require.NoError(t, err)
	assert.Equal(t, "summarize", s.Metadata().ID)
	assert.Empty(t, s.Metadata().Environment)
	assert.Equal(t, 1, m.calls())
	// Second call hits cache
	s2, err := reg.GetSplitter(ctx, "summarize", "")
	require.NoError(t, err)
	assert.Same(t, s, s2)
	assert.Equal(t, 1, m.calls())
}

func TestRegistry_GetSplitter_EnvSpecific(t *testing.T) {
	t.Parallel()
	m := &mockFetcher{data: map[string]Document{
		"p:":     yamlDoc("id: p\nmax_count: 10\n"),
		"p:prod": {Data: []byte("id = \"p\"\nmax_count = 20\n"), Format: manifest.FormatTOML},
	}}
	reg := New(m)
	ctx := context.Background()
	prod, err := reg.GetSplitter(ctx, "p", "prod")
	require.NoError(t, err)
	assert.Equal(t, 20, prod.MaxCount())
	assert.Equal(t, "prod", prod.Metadata().Environment)

	staging, err := reg.GetSplitter(ctx, "p", "staging")
	require.NoError(t, err)
	assert.Equal(t, 10, staging.MaxCount())
	assert.Equal(t, "staging", staging.Metadata().Environment)
	assert.Equal(t, 2, m.calls())
}

func TestRegistry_GetSplitter_Errors(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection refused")
	m := &mockFetcher{fetch: func(_ context.Context, name, _ string) (Document, error) {
		switch name {
		case "down":
			return Document{}, fmt.Errorf("%w: %w", ErrFetchFailed, boom)
		case "bad":
			return yamlDoc("id: [\n"), nil
		default:
			return Document{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
	}}
	reg := New(m)
	ctx := context.Background()

	_, err := reg.GetSplitter(ctx, "down", "")
	require.ErrorIs(t, err, ErrFetchFailed)
	require.ErrorIs(t, err, boom)

	_, err = reg.GetSplitter(ctx, "bad", "")
	require.ErrorIs(t, err, promptsplit.ErrInvalidManifest)

	_, err = reg.GetSplitter(ctx, "missing", "")
	require.ErrorIs(t, err, promptsplit.ErrTemplateNotFound)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = reg.GetSplitter(ctx, "bad name", "")
	require.ErrorIs(t, err, promptsplit.ErrInvalidName)
	assert.Equal(t, 3, m.calls())

	// Failures are not cached.
	_, err = reg.GetSplitter(ctx, "down", "")
	require.Error(t, err)
	assert.Equal(t, 4, m.calls())
}

func TestRegistry_TTLExpiry(t *testing.T) {
	t.Parallel()
	m := &mockFetcher{data: map[string]Document{"p:": yamlDoc("id: p\nmax_count: 1\n")}}
	reg := New(m, WithTTL(time.Nanosecond))
	ctx := context.Background()
	_, err := reg.GetSplitter(ctx, "p", "")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = reg.GetSplitter(ctx, "p", "")
	require.NoError(t, err)
	assert.Equal(t, 2, m.calls())
}

func TestRegistry_InfiniteTTL(t *testing.T) {
	t.Parallel()
	m := &mockFetcher{data: map[string]Document{"p:": yamlDoc("id: p\nmax_count: 1\n")}}
	reg := New(m, WithTTL(0))
	ctx := context.Background()
	for range 3 {
		_, err := reg.GetSplitter(ctx, "p", "")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, m.calls())
}

func TestRegistry_Evict(t *testing.T) {
	t.Parallel()
	m := &mockFetcher{data: map[string]Document{"p:": yamlDoc("id: p\nmax_count: 1\n")}}
	reg := New(m)
	ctx := context.Background()
	_, err := reg.GetSplitter(ctx, "p", "")
	require.NoError(t, err)
	_, err = reg.GetSplitter(ctx, "p", "x")
	require.NoError(t, err)
	assert.Equal(t, 2, m.calls())

	reg.Evict("p", "")
	_, err = reg.GetSplitter(ctx, "p", "")
	require.NoError(t, err)
	_, err = reg.GetSplitter(ctx, "p", "x")
	require.NoError(t, err)
	assert.Equal(t, 3, m.calls())

	reg.EvictAll()
	_, err = reg.GetSplitter(ctx, "p", "x")
	require.NoError(t, err)
	assert.Equal(t, 4, m.calls())
}

func TestRegistry_SingleflightDedup(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	var inflight atomic.Int32
	m := &mockFetcher{fetch: func(_ context.Context, _, _ string) (Document, error) {
		inflight.Add(1)
		<-release
		return yamlDoc("id: p\nmax_count: 1\n"), nil
	}}
	reg := New(m)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	results := make(chan *promptsplit.Splitter, n)
	for range n {
		wg.Go(func() {
			s, err := reg.GetSplitter(ctx, "p", "")
			assert.NoError(t, err)
			results <- s
		})
	}
	require.Eventually(t, func() bool { return inflight.Load() == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	var first *promptsplit.Splitter
	for s := range results {
		require.NotNil(t, s)
		if first == nil {
			first = s
		}
		assert.Same(t, first, s)
	}
	assert.Equal(t, 1, m.calls())
}

func TestRegistry_CanceledContext(t *testing.T) {
	t.Parallel()
	m := &mockFetcher{fetch: func(ctx context.Context, _, _ string) (Document, error) {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		return yamlDoc("id: p\nmax_count: 1\n"), nil
	}}
	reg := New(m)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reg.GetSplitter(ctx, "p", "")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, m.calls())
}

func TestRegistry_WithManifestOptions(t *testing.T) {
	t.Parallel()
	m := &mockFetcher{data: map[string]Document{"p:": yamlDoc("id: p\nmax_count: 1\ncounter: house\n")}}
	resolve := func(string) (promptsplit.Counter, error) { return promptsplit.ByteCounter{}, nil }
	reg := New(m, WithManifestOptions(manifest.WithCounterResolver(resolve)))
	s, err := reg.GetSplitter(context.Background(), "p", "")
	require.NoError(t, err)
	assert.IsType(t, promptsplit.ByteCounter{}, s.Counter())
}

func TestRegistry_Close(t *testing.T) {
	t.Parallel()
	m := &mockFetcher{}
	require.NoError(t, New(m).Close())
	assert.True(t, m.closed)

	plain := FetcherFunc(func(context.Context, string, string) (Document, error) { return Document{}, nil })
	require.NoError(t, New(plain).Close())
}

func TestNew_NilFetcherPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil) })
}
