// Package fileregistry provides a filesystem-based splitter registry that loads
// manifests on demand (lazy) and caches them. Use New to create a Registry;
// GetSplitter resolves name and env to {dir}/{name}.{env}.{yaml,yml,toml}
// with fallback to {dir}/{name}.{yaml,yml,toml}.
package fileregistry
