package remoteregistry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skosovsky/promptsplit"
	"github.com/skosovsky/promptsplit/manifest"
)

var _ Fetcher = (*HTTPFetcher)(nil)

const (
	// Manifests are a few hundred bytes; anything past 1 MiB is rejected.
	maxBodySize      = 1 << 20
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "promptsplit-remote-registry/1.0"
)

// errMissing marks a 404 for one candidate file.
var errMissing = errors.New("missing")

// HTTPFetcher reads splitter manifests from a static file server or an object store
// exposed over HTTP. Each manifest lives at {base}/{file}, where file is one of
// CandidatePaths(name, env).
type HTTPFetcher struct {
	base   string
	client *http.Client
	token  string
}

// HTTPOption customizes an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient replaces the HTTP client. A nil client is ignored.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPFetcher) {
		if c != nil {
			h.client = c
		}
	}
}

// WithAuthToken sends token as a Bearer credential on every request.
func WithAuthToken(token string) HTTPOption {
	return func(h *HTTPFetcher) { h.token = token }
}

// NewHTTPFetcher returns a fetcher rooted at base, for example
// "https://cdn.example.com/splitters". base needs a scheme.
func NewHTTPFetcher(base string, opts ...HTTPOption) (*HTTPFetcher, error) {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return nil, errors.New("remoteregistry: empty base URL")
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("remoteregistry: base URL %q has no scheme", base)
	}
	h := &HTTPFetcher{base: base, client: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Fetch requests the candidate files one by one and returns the first that exists.
// A 404 moves on to the next file; any other failure stops the search.
func (h *HTTPFetcher) Fetch(ctx context.Context, name, env string) (Document, error) {
	if err := promptsplit.ValidateName(name, env); err != nil {
		return Document{}, err
	}
	for _, file := range CandidatePaths(name, env) {
		data, err := h.get(ctx, file)
		switch {
		case errors.Is(err, errMissing):
			continue
		case err != nil:
			return Document{}, err
		}
		format, _ := manifest.FormatOf(file)
		return Document{Data: data, Format: format}, nil
	}
	return Document{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Close drops idle keep-alive connections.
func (h *HTTPFetcher) Close() error {
	h.client.CloseIdleConnections()
	return nil
}

func (h *HTTPFetcher) get(ctx context.Context, file string) ([]byte, error) {
	target := h.base + "/" + url.PathEscape(file)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req) // #nosec G704 -- base is operator config, file is a validated name
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errMissing
	case resp.StatusCode/100 != 2:
		return nil, fmt.Errorf("%w: %w: GET %s: %s", ErrFetchFailed, ErrHTTPStatus, target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFetchFailed, file, err)
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetchFailed, file, maxBodySize)
	}
	return data, nil
}
