// Package promptsplit packs an ordered list of texts into prompts that fit a token limit.
// Each group of consecutive texts is rendered through a Template and measured by a Counter;
// Split validates every text on its own first, then greedily extends groups left to right.
// Texts are never reordered or cut, and the template's own tokens count against the limit.
//
// Package tokencount provides tokenizer-backed counters; package manifest and the
// registry packages load splitters from YAML or TOML files.
package promptsplit
