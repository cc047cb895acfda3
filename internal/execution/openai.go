package execution

import (
	"context"
	"time"

	"github.com/augmentlab/ftkit/internal/openai"
)

// OpenAIEngine sends prompts to an OpenAI-compatible chat completions API.
// Azure OpenAI uses the same engine with a token authorizer.
type OpenAIEngine struct {
	client         *openai.Client
	defaultModelID string
	temperature    *float64
}

// NewOpenAIEngine wraps client.
func NewOpenAIEngine(client *openai.Client, defaultModelID string) *OpenAIEngine {
	return &OpenAIEngine{client: client, defaultModelID: defaultModelID}
}

// WithTemperature sets the sampling temperature sent with every request.
func (e *OpenAIEngine) WithTemperature(t float64) *OpenAIEngine {
	e.temperature = &t
	return e
}

func (e *OpenAIEngine) Initialize(ctx context.Context) error {
	return ctx.Err()
}

func (e *OpenAIEngine) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	modelID := e.defaultModelID
	if req.ModelID != "" {
		modelID = req.ModelID
	}

	ctx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	start := time.Now()
	chat := openai.NewChatRequest(modelID, req.System, req.Prompt)
	chat.Temperature = e.temperature

	text, err := e.client.ChatCompletion(ctx, chat)
	if err != nil {
		return nil, err
	}
	return &CompletionResponse{
		Text:       text,
		ModelID:    modelID,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

func (e *OpenAIEngine) Shutdown(ctx context.Context) error {
	return nil
}
