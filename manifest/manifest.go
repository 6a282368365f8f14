package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/skosovsky/promptsplit"
	"github.com/skosovsky/promptsplit/tokencount"
)

// defaultSeparator joins texts when a manifest sets neither template nor separator.
const defaultSeparator = " "

// Format is a manifest file format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf returns the format for a file name by extension (.yaml, .yml, .toml).
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Manifest is the file shape of a splitter definition.
// Fields may be changed before Build (the CLI applies flag overrides this way).
type Manifest struct {
	ID          string         `yaml:"id" toml:"id"`
	Version     string         `yaml:"version" toml:"version"`
	Description string         `yaml:"description" toml:"description"`
	MaxCount    int            `yaml:"max_count" toml:"max_count"`
	Counter     string         `yaml:"counter" toml:"counter"`
	Search      string         `yaml:"search" toml:"search"`
	Separator   *string        `yaml:"separator" toml:"separator"`
	Template    string         `yaml:"template" toml:"template"`
	Variables   map[string]any `yaml:"variables" toml:"variables"`
	Metadata    struct {
		Tags []string `yaml:"tags" toml:"tags"`
	} `yaml:"metadata" toml:"metadata"`
}

// CounterResolver maps a counter name from a manifest to a Counter.
type CounterResolver func(name string) (promptsplit.Counter, error)

// Option configures Build and the Parse functions.
type Option func(*config)

type config struct {
	resolve  CounterResolver
	splitter []promptsplit.Option
}

// WithCounterResolver sets how counter names are resolved. Default is tokencount.ByName.
func WithCounterResolver(r CounterResolver) Option {
	return func(c *config) {
		if r != nil {
			c.resolve = r
		}
	}
}

// WithSplitterOptions appends options passed to promptsplit.NewSplitter after the manifest's own.
func WithSplitterOptions(opts ...promptsplit.Option) Option {
	return func(c *config) {
		c.splitter = append(c.splitter, opts...)
	}
}

// Unmarshal decodes data in the given format. Unknown keys are rejected.
// Errors wrap promptsplit.ErrInvalidManifest.
func Unmarshal(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", promptsplit.ErrInvalidManifest, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", promptsplit.ErrInvalidManifest, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", promptsplit.ErrInvalidManifest, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", promptsplit.ErrInvalidManifest, format)
	}
	return &m, nil
}

// Build validates m and constructs the Splitter it describes.
// Every failure, including template parse errors and unknown counters, wraps
// promptsplit.ErrInvalidManifest; the underlying cause stays reachable with errors.Is.
func (m *Manifest) Build(opts ...Option) (*promptsplit.Splitter, error) {
	cfg := config{resolve: tokencount.ByName}
	for _, opt := range opts {
		opt(&cfg)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("%w: missing id", promptsplit.ErrInvalidManifest)
	}
	if m.MaxCount <= 0 {
		return nil, fmt.Errorf("%w: %s: %w: max_count %d", promptsplit.ErrInvalidManifest, m.ID, promptsplit.ErrInvalidMaxCount, m.MaxCount)
	}
	search, err := promptsplit.ParseSearch(m.Search)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", promptsplit.ErrInvalidManifest, m.ID, err)
	}
	tpl, err := m.template()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", promptsplit.ErrInvalidManifest, m.ID, err)
	}
	counter, err := cfg.resolve(m.Counter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: counter: %w", promptsplit.ErrInvalidManifest, m.ID, err)
	}
	splitterOpts := []promptsplit.Option{
		promptsplit.WithSearch(search),
		promptsplit.WithMetadata(promptsplit.Metadata{
			ID:          m.ID,
			Version:     m.Version,
			Description: m.Description,
			Tags:        m.Metadata.Tags,
		}),
	}
	splitterOpts = append(splitterOpts, cfg.splitter...)
	s, err := promptsplit.NewSplitter(tpl, counter, m.MaxCount, splitterOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", promptsplit.ErrInvalidManifest, m.ID, err)
	}
	return s, nil
}

func (m *Manifest) template() (promptsplit.Template, error) {
	if m.Template == "" {
		if len(m.Variables) > 0 {
			return nil, errors.New("variables require a template")
		}
		sep := defaultSeparator
		if m.Separator != nil {
			sep = *m.Separator
		}
		return promptsplit.Join(sep), nil
	}
	if m.Separator != nil {
		return nil, errors.New("template and separator are mutually exclusive")
	}
	return promptsplit.NewTextTemplate(m.Template, promptsplit.WithVars(m.Variables))
}

// ParseBytes parses a YAML manifest and returns its Splitter.
func ParseBytes(data []byte, opts ...Option) (*promptsplit.Splitter, error) {
	return parse(data, FormatYAML, opts)
}

// ParseTOML parses a TOML manifest and returns its Splitter.
func ParseTOML(data []byte, opts ...Option) (*promptsplit.Splitter, error) {
	return parse(data, FormatTOML, opts)
}

// ParseFile reads and parses a manifest file; the format follows the extension.
func ParseFile(name string, opts ...Option) (*promptsplit.Splitter, error) {
	m, err := ReadFile(name)
	if err != nil {
		return nil, err
	}
	return m.Build(opts...)
}

// ParseFS reads and parses a manifest from fs.FS (e.g. embed.FS).
func ParseFS(fsys fs.FS, name string, opts ...Option) (*promptsplit.Splitter, error) {
	format, ok := FormatOf(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unsupported extension", promptsplit.ErrInvalidManifest, name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: read fs: %w", err)
	}
	return parse(data, format, opts)
}

// ReadFile reads and decodes a manifest file without building it.
func ReadFile(name string) (*Manifest, error) {
	format, ok := FormatOf(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unsupported extension", promptsplit.ErrInvalidManifest, name)
	}
	data, err := os.ReadFile(name) // #nosec G304 -- path is validated by caller
	if err != nil {
		return nil, fmt.Errorf("manifest: read file: %w", err)
	}
	return Unmarshal(data, format)
}

func parse(data []byte, format Format, opts []Option) (*promptsplit.Splitter, error) {
	m, err := Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	return m.Build(opts...)
}
