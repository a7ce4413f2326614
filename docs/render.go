package docs

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/supernal-tools/supernal/config"
	"github.com/supernal-tools/supernal/workflow"
)

// defaultTemplate is the built-in configuration overview.
const defaultTemplate = `# {{ title .Name }}

## Settings

| Key | Value |
|-----|-------|
{{- range .Keys }}
| {{ .Key }} | {{ .Summary }} |
{{- end }}
{{- if .Workflow }}

## Workflow States

| State | Category | WIP Limit |
|-------|----------|-----------|
{{- range .Workflow.States }}
| {{ .Name }} | {{ .Category }} | {{ if .WIPLimit }}{{ .WIPLimit }}{{ else }}-{{ end }} |
{{- end }}
{{- if .Workflow.Priorities }}

Priorities: {{ join .Workflow.Priorities ", " }}
{{- end }}
{{- end }}
`

// entry is one top-level key in the rendered overview.
type entry struct {
	Key     string
	Summary string
}

// view is the data handed to the template.
type view struct {
	Name     string
	Keys     []entry
	Workflow *workflow.Config
}

// Renderer renders configuration documents to markdown.
type Renderer struct {
	tmpl *template.Template
}

func funcMap() template.FuncMap {
	titleCaser := cases.Title(language.English)
	return template.FuncMap{
		"title": func(s string) string {
			s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
			return titleCaser.String(s)
		},
		"join": strings.Join,
	}
}

// NewRenderer creates a renderer with the built-in template.
func NewRenderer() *Renderer {
	tmpl := template.Must(template.New("config").Funcs(funcMap()).Parse(defaultTemplate))
	return &Renderer{tmpl: tmpl}
}

// NewRendererFromTemplate creates a renderer from a custom template body.
func NewRendererFromTemplate(body string) (*Renderer, error) {
	tmpl, err := template.New("config").Funcs(funcMap()).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse docs template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render renders the merged document under the given display name. Output
// is deterministic: keys are sorted.
func (r *Renderer) Render(name string, doc config.Document) (string, error) {
	v := view{Name: name}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Keys = append(v.Keys, entry{Key: k, Summary: summarize(doc[k])})
	}

	// The workflow section is best-effort: a document that is not a
	// workflow just renders without it.
	if wf, err := workflow.FromDocument(doc); err == nil {
		v.Workflow = wf
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render docs for %s: %w", name, err)
	}
	return buf.String(), nil
}

// summarize renders a compact, single-line description of a value.
func summarize(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case map[string]any:
		return fmt.Sprintf("mapping (%d keys)", len(val))
	case config.Document:
		return fmt.Sprintf("mapping (%d keys)", len(val))
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				return fmt.Sprintf("list (%d items)", len(val))
			default:
				parts = append(parts, fmt.Sprintf("%v", item))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}
