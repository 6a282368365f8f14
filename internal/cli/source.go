package cli

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/spf13/cobra"

	"github.com/skosovsky/promptsplit"
	"github.com/skosovsky/promptsplit/fileregistry"
	"github.com/skosovsky/promptsplit/manifest"
	"github.com/skosovsky/promptsplit/remoteregistry"
)

// tokenEnv is read when --token is not given.
const tokenEnv = "PROMPTSPLIT_TOKEN"

// overrideFlags change a manifest or describe an inline splitter.
var overrideFlags = []string{"template", "separator", "counter", "max-count", "search", "var"}

// sourceFlags select where the splitter comes from.
type sourceFlags struct {
	manifest string
	registry string
	remote   string
	name     string
	env      string
	token    string

	template  string
	separator string
	counter   string
	maxCount  int
	search    string
	vars      map[string]string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.manifest, "manifest", "", "manifest file (.yaml, .yml or .toml)")
	fl.StringVar(&f.registry, "registry", "", "directory of manifests, used with --name")
	fl.StringVar(&f.remote, "remote", "", "base URL of a manifest server, used with --name")
	fl.StringVar(&f.name, "name", "", "splitter name in the registry")
	fl.StringVar(&f.env, "env", "", "registry environment (e.g. prod)")
	fl.StringVar(&f.token, "token", "", "Bearer token for --remote (default $"+tokenEnv+")")
	fl.StringVar(&f.template, "template", "", "Go text/template over .Texts, .Count and .Vars")
	fl.StringVar(&f.separator, "separator", " ", "separator when no template is given")
	fl.StringVar(&f.counter, "counter", "", "counter: runes, chars, bytes, estimate, bpe:<name>, anthropic:<model>, gemini:<model> or a tiktoken model/encoding")
	fl.IntVar(&f.maxCount, "max-count", 0, "maximum count per prompt")
	fl.StringVar(&f.search, "search", "", "boundary search: linear or binary")
	fl.StringToStringVar(&f.vars, "var", nil, "template variable key=value (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("manifest", "registry", "remote")
}

// splitter builds the splitter the flags describe. The returned close func releases
// registry resources and is never nil.
func (a *app) splitter(cmd *cobra.Command, f *sourceFlags) (*promptsplit.Splitter, func() error, error) {
	noop := func() error { return nil }
	opts := []manifest.Option{manifest.WithSplitterOptions(promptsplit.WithLogger(a.logger))}
	fromRegistry := f.registry != "" || f.remote != ""
	if fromRegistry {
		if f.name == "" {
			return nil, noop, errors.New("--name is required with --registry and --remote")
		}
		for _, name := range overrideFlags {
			if cmd.Flags().Changed(name) {
				return nil, noop, fmt.Errorf("--%s cannot be combined with --registry or --remote", name)
			}
		}
	} else if f.name != "" || f.env != "" {
		return nil, noop, errors.New("--name and --env need --registry or --remote")
	}

	switch {
	case f.registry != "":
		reg := fileregistry.New(f.registry, fileregistry.WithManifestOptions(opts...))
		s, err := reg.GetSplitter(cmd.Context(), f.name, f.env)
		return s, noop, err
	case f.remote != "":
		token := f.token
		if token == "" {
			token = os.Getenv(tokenEnv)
		}
		fetcher, err := remoteregistry.NewHTTPFetcher(f.remote, remoteregistry.WithAuthToken(token))
		if err != nil {
			return nil, noop, err
		}
		reg := remoteregistry.New(fetcher,
			remoteregistry.WithManifestOptions(opts...),
			remoteregistry.WithLogger(a.logger))
		s, err := reg.GetSplitter(cmd.Context(), f.name, f.env)
		if err != nil {
			_ = reg.Close()
			return nil, noop, err
		}
		return s, reg.Close, nil
	case f.manifest != "":
		m, err := manifest.ReadFile(f.manifest)
		if err != nil {
			return nil, noop, err
		}
		f.apply(cmd, m)
		s, err := m.Build(opts...)
		return s, noop, err
	default:
		if !cmd.Flags().Changed("max-count") {
			return nil, noop, errors.New("--max-count is required without --manifest, --registry or --remote")
		}
		m := &manifest.Manifest{ID: "inline"}
		f.apply(cmd, m)
		s, err := m.Build(opts...)
		return s, noop, err
	}
}

// apply copies explicitly set override flags onto m. A template replaces the separator
// and the other way round.
func (f *sourceFlags) apply(cmd *cobra.Command, m *manifest.Manifest) {
	fl := cmd.Flags()
	if fl.Changed("template") {
		m.Template = f.template
		m.Separator = nil
	}
	if fl.Changed("separator") {
		sep := f.separator
		m.Separator = &sep
		m.Template = ""
		m.Variables = nil
	}
	if fl.Changed("counter") {
		m.Counter = f.counter
	}
	if fl.Changed("max-count") {
		m.MaxCount = f.maxCount
	}
	if fl.Changed("search") {
		m.Search = f.search
	}
	if len(f.vars) > 0 {
		vars := maps.Clone(m.Variables)
		if vars == nil {
			vars = make(map[string]any, len(f.vars))
		}
		for k, v := range f.vars {
			vars[k] = v
		}
		m.Variables = vars
	}
}
