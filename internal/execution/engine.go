package execution

import (
	"context"
	"time"
)

// Engine produces a text completion for a prompt.
type Engine interface {
	// Initialize sets up the engine
	Initialize(ctx context.Context) error

	// Complete sends one prompt and returns the model's text
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Shutdown releases resources
	Shutdown(ctx context.Context) error
}

// CompletionRequest is a single prompt sent to an engine.
type CompletionRequest struct {
	// ModelID overrides the engine's default model when set.
	ModelID string
	// System is an optional system message.
	System string
	Prompt string
	// Timeout bounds the request; zero means no extra deadline.
	Timeout time.Duration
}

// CompletionResponse is an engine's answer to a CompletionRequest.
type CompletionResponse struct {
	Text       string
	ModelID    string
	DurationMs int64
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
