// Package render renders the rollup discussion from a text/template.
package render

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/discussion.md.tmpl
var defaultTemplate string

// Renderer renders documents from a parsed template.
type Renderer struct {
	tmpl *template.Template
}

// New parses the template at path, or the built-in discussion template
// when path is empty.
func New(path string) (*Renderer, error) {
	text, name := defaultTemplate, "discussion.md.tmpl"
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", path, err)
		}
		text, name = string(content), path
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{"indent": indent}).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template against data.
func (r *Renderer) Render(data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", r.tmpl.Name(), err)
	}
	return b.String(), nil
}

// indent prefixes every line but the first with n spaces, so multi-line
// values stay inside the list item they are rendered under.
func indent(n int, text string) string {
	return strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", n))
}
