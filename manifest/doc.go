// Package manifest loads splitter definitions from YAML or TOML files.
//
// A manifest names a template (or a separator for plain joining), a counter, a limit and
// optional metadata:
//
//	id: summarize
//	version: "1"
//	max_count: 60
//	counter: p50k_base
//	template: |
//	  Summarize the following text.
//
//	  Text: """{{ join .Texts " " }}"""
//
// Counter names are resolved with tokencount.ByName unless WithCounterResolver is given.
package manifest
