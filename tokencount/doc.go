// Package tokencount provides promptsplit.Counter implementations backed by real tokenizers:
// offline BPE tables (Tiktoken, BPE) and provider token-counting APIs (Anthropic, Gemini).
// ByName resolves the counter names used in manifests and on the command line.
package tokencount
