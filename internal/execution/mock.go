package execution

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockEngine is a deterministic engine for dry runs and tests. Without a
// responder it echoes numbered lines built from the prompt's last line.
type MockEngine struct {
	modelID   string
	responder func(req *CompletionRequest, call int) (string, error)

	mu    sync.Mutex
	calls int
}

// NewMockEngine creates a new mock engine
func NewMockEngine(modelID string) *MockEngine {
	return &MockEngine{modelID: modelID}
}

// WithResponder replaces the canned output. call counts from zero across
// all requests the engine has served.
func (m *MockEngine) WithResponder(fn func(req *CompletionRequest, call int) (string, error)) *MockEngine {
	m.responder = fn
	return m
}

// Calls returns how many completions were requested.
func (m *MockEngine) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockEngine) Initialize(ctx context.Context) error {
	return nil
}

func (m *MockEngine) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	m.mu.Lock()
	call := m.calls
	m.calls++
	m.mu.Unlock()

	modelID := m.modelID
	if req.ModelID != "" {
		modelID = req.ModelID
	}

	var text string
	if m.responder != nil {
		var err error
		text, err = m.responder(req, call)
		if err != nil {
			return nil, err
		}
	} else {
		text = mockLines(req.Prompt, call)
	}

	return &CompletionResponse{
		Text:       text,
		ModelID:    modelID,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

func (m *MockEngine) Shutdown(ctx context.Context) error {
	return nil
}

func mockLines(prompt string, call int) string {
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	last := lines[len(lines)-1]
	var sb strings.Builder
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&sb, "%d. Mock response %d.%d for: %s\n", i, call, i, last)
	}
	return sb.String()
}
