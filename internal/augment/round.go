package augment

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/augmentlab/ftkit/internal/execution"
	"github.com/augmentlab/ftkit/internal/tokens"
)

// Defaults for a single generation round.
const (
	DefaultSampleSize = 10
	DefaultAskFor     = 30
)

// Request describes one round of augmentation for a seed set.
type Request struct {
	Type    string
	ModelID string
	Phrases Phrases

	// SampleSize is how many seed lines are embedded as examples.
	SampleSize int
	// AskFor is how many new lines the prompt requests.
	AskFor int
	// Copies is how many completions are requested per round and Workers
	// bounds how many run at once.
	Copies  int
	Workers int
	Timeout time.Duration
	System  string
	Vars    map[string]string
}

func (r Request) withDefaults() Request {
	if r.Type == "" {
		r.Type = TypeBase
	}
	if r.SampleSize <= 0 {
		r.SampleSize = DefaultSampleSize
	}
	if r.AskFor <= 0 {
		r.AskFor = DefaultAskFor
	}
	if r.Copies <= 0 {
		r.Copies = 1
	}
	if r.Workers <= 0 {
		r.Workers = 1
	}
	return r
}

// Generator runs augmentation rounds against an engine.
type Generator struct {
	Engine    execution.Engine
	Templates TemplateSource
	Rand      *rand.Rand
}

// AugmentSentences runs one round: sample seeds, compose the prompt, send
// it through the engine and return the lines that pass the filter.
func (g *Generator) AugmentSentences(ctx context.Context, seeds []string, req Request) ([]string, error) {
	req = req.withDefaults()

	examples, err := Sample(g.Rand, seeds, req.Type, req.SampleSize)
	if err != nil {
		return nil, err
	}
	slog.Debug("sampled examples", "type", req.Type, "examples", strings.Join(examples, " | "))

	tmpl, err := g.Templates.Load(req.Type)
	if err != nil {
		return nil, err
	}
	prompt, err := ComposePrompt(tmpl, req.Type, examples, req.Phrases.PromptPhrases(), req.AskFor, req.Vars)
	if err != nil {
		return nil, err
	}
	slog.Debug("composed prompt", "type", req.Type, "ask_for", req.AskFor, "prompt_tokens", tokens.Estimate(prompt))

	filter := Filter{Required: req.Phrases.Required, Banned: req.Phrases.Banned}
	return execution.Batch(ctx, g.Engine, &execution.CompletionRequest{
		ModelID: req.ModelID,
		System:  req.System,
		Prompt:  prompt,
		Timeout: req.Timeout,
	}, req.Copies, req.Workers, filter.Parse)
}
