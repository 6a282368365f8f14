package promptsplit

import (
	"bytes"
	"fmt"
	"maps"
	"strings"
	"text/template"
)

// Join returns a Template that concatenates texts with sep and nothing else.
func Join(sep string) Template {
	return joinTemplate(sep)
}

type joinTemplate string

func (j joinTemplate) Render(texts []string) (string, error) {
	return strings.Join(texts, string(j)), nil
}

// TextTemplate renders texts with Go text/template.
// Template data: .Texts ([]string), .Count (len of .Texts), .Vars (from WithVars).
// Functions: join, numbered, quote, truncate_chars.
// Fields must not be mutated after construction; Render is safe for concurrent use.
type TextTemplate struct {
	src  string
	vars map[string]any
	tpl  *template.Template
}

// TemplateOption configures a TextTemplate.
type TemplateOption func(*TextTemplate)

// WithVars sets values available in the template as .Vars.
func WithVars(vars map[string]any) TemplateOption {
	return func(t *TextTemplate) {
		t.vars = vars
	}
}

// templateData is the dot value passed to the template on each Render.
type templateData struct {
	Texts []string
	Count int
	Vars  map[string]any
}

// NewTextTemplate parses src and checks that every .Vars key it references is provided.
// Returns ErrTemplateParse on syntax errors and a *VariableError wrapping ErrMissingVariable
// when a referenced variable is missing.
func NewTextTemplate(src string, opts ...TemplateOption) (*TextTemplate, error) {
	t := &TextTemplate{src: src}
	for _, opt := range opts {
		opt(t)
	}
	t.vars = maps.Clone(t.vars)
	if t.vars == nil {
		t.vars = make(map[string]any)
	}
	parsed, err := template.New("").Option("missingkey=error").Funcs(defaultFuncMap()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateParse, err)
	}
	for _, name := range extractVarsFromTree(parsed.Tree) {
		if _, ok := t.vars[name]; !ok {
			return nil, &VariableError{Variable: name, Err: ErrMissingVariable}
		}
	}
	t.tpl = parsed
	return t, nil
}

// Render executes the template over texts. Execution errors wrap ErrTemplateRender.
func (t *TextTemplate) Render(texts []string) (string, error) {
	var buf bytes.Buffer
	data := templateData{Texts: texts, Count: len(texts), Vars: t.vars}
	if err := t.tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// Source returns the template text as given to NewTextTemplate.
func (t *TextTemplate) Source() string { return t.src }

var (
	_ Template = joinTemplate("")
	_ Template = (*TextTemplate)(nil)
	_ Template = TemplateFunc(nil)
)
