// Package remoteregistry provides a remote splitter registry that loads manifests
// via a Fetcher (e.g. HTTP). It caches splitters with a configurable TTL, deduplicates
// concurrent loads of the same name and supports Bearer token authentication.
// Use New with an implementation of Fetcher (e.g. NewHTTPFetcher);
// GetSplitter returns a splitter by name and environment.
package remoteregistry
