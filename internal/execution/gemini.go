package execution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEngine sends prompts to Google Gemini.
type GeminiEngine struct {
	client         *genai.Client
	defaultModelID string
}

// NewGeminiEngine creates a Gemini client authenticated with apiKey.
func NewGeminiEngine(ctx context.Context, apiKey, defaultModelID string) (*GeminiEngine, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiEngine{client: client, defaultModelID: defaultModelID}, nil
}

func (e *GeminiEngine) Initialize(ctx context.Context) error {
	return ctx.Err()
}

func (e *GeminiEngine) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	modelID := e.defaultModelID
	if req.ModelID != "" {
		modelID = req.ModelID
	}

	ctx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	model := e.client.GenerativeModel(modelID)
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text, err := geminiText(resp)
	if err != nil {
		return nil, err
	}
	return &CompletionResponse{
		Text:       text,
		ModelID:    modelID,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

func (e *GeminiEngine) Shutdown(ctx context.Context) error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", errors.New("gemini: no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("gemini: no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
