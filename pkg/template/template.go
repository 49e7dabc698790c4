// Package template renders parameterized dashboard documents. A template
// is a document file with Go text/template actions; rendering substitutes
// the parameters and decodes the result, recording the template name on
// the definition so re-renders can be traced back to their source.
package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/leapstack-labs/leapboard/pkg/core"
	"github.com/leapstack-labs/leapboard/pkg/document"
)

// Render executes a document template against params and decodes the
// result. Missing parameters fail the render rather than producing a
// half-substituted document.
func Render(name, text string, params map[string]any) (*core.Dashboard, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return nil, fmt.Errorf("failed to render template %q: %w", name, err)
	}

	d, err := document.Decode(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("template %q rendered an invalid document: %w", name, err)
	}
	if d.SourceTemplate == "" {
		d.SourceTemplate = name
	}
	return d, nil
}

// RenderFile reads a template from disk and renders it. The template name
// is the file's base name without extension.
func RenderFile(path string, params map[string]any) (*core.Dashboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Render(name, string(data), params)
}
