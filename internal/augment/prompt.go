package augment

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/augmentlab/ftkit/internal/template"
)

//go:embed prompts/*.txt
var builtinPrompts embed.FS

// TemplateSource resolves an augmentation type to its prompt template.
// Files in Dir take precedence over the built-in templates.
type TemplateSource struct {
	Dir string
}

// Load returns the template text for augType.
func (s TemplateSource) Load(augType string) (string, error) {
	if augType == "" || strings.ContainsAny(augType, `/\`) {
		return "", fmt.Errorf("invalid augmentation type %q", augType)
	}
	name := augType + ".txt"

	if s.Dir != "" {
		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading prompt template: %w", err)
		}
	}

	data, err := builtinPrompts.ReadFile("prompts/" + name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("no prompt template for augmentation type %q", augType)
		}
		return "", err
	}
	return string(data), nil
}

// Types lists the built-in augmentation types.
func Types() []string {
	entries, _ := builtinPrompts.ReadDir("prompts")
	var types []string
	for _, e := range entries {
		types = append(types, strings.TrimSuffix(e.Name(), ".txt"))
	}
	return types
}

// ComposePrompt fills tmpl with the sampled examples, the phrase list, the
// number of lines to ask for and the task's vars.
func ComposePrompt(tmpl, augType string, examples, phrases []string, count int, vars map[string]string) (string, error) {
	return template.Render(tmpl, &template.Context{
		ExampleSentences: strings.Join(examples, "\n"),
		Count:            count,
		RequiredPhrases:  strings.Join(phrases, ", "),
		Type:             augType,
		Vars:             vars,
	})
}
