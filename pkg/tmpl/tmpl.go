// Package tmpl renders the user message sent with each completion request.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// quoteBlock prefixes every line of s with "> " so the model sees the
// document as a quoted block.
func quoteBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"trim":  strings.TrimSpace,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"quote": quoteBlock,
}

func parse(tmpl string) (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return t, nil
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - join: Join string slice with separator (e.g., join .Rules ", ")
//   - trim, upper, lower: strings.TrimSpace, ToUpper, ToLower
//   - quote: Prefix each line with "> "
func Render(tmpl string, data any) (string, error) {
	t, err := parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
