// Package embedregistry provides an embed.FS-based splitter registry that loads
// all manifests at construction (eager). Use New with an fs.FS and root path;
// GetSplitter performs an O(1) lookup by name and env.
package embedregistry
