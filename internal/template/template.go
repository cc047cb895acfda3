package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Context holds all variables available to an augmentation prompt template.
type Context struct {
	// ExampleSentences is the sampled seed lines, one per line.
	ExampleSentences string
	// Count is how many new lines the prompt asks for.
	Count int
	// RequiredPhrases is the de-duplicated phrase list joined with ", ".
	RequiredPhrases string
	// Type is the augmentation type the template belongs to.
	Type string

	// Vars carries the task's free-form values from its batch entry.
	Vars map[string]string
}

// Render resolves template expressions in the given string.
// Uses Go's text/template syntax: {{.ExampleSentences}}, {{.Vars.task}}.
// Unknown keys are an error so a typo in a prompt file fails loudly.
func Render(tmpl string, ctx *Context) (string, error) {
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}

	t, err := template.New("").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("template: parse: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("template: render: %w", err)
	}

	return buf.String(), nil
}
