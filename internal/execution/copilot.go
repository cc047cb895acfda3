package execution

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	copilot "github.com/github/copilot-sdk/go"
)

// CopilotEngine generates completions through GitHub Copilot sessions, one
// fresh session per request.
type CopilotEngine struct {
	defaultModelID string

	client sessionClient

	startOnce sync.Once
	startErr  error
}

type CopilotEngineOptions struct {
	NewSessionClient func(clientOptions *copilot.ClientOptions) sessionClient
}

// NewCopilotEngine creates a CopilotEngine. defaultModelID may be blank, in
// which case the Copilot CLI picks its own model.
func NewCopilotEngine(defaultModelID string, options *CopilotEngineOptions) *CopilotEngine {
	copilotOptions := &copilot.ClientOptions{
		LogLevel:  "error",
		AutoStart: copilot.Bool(false),
	}

	var client sessionClient
	if options == nil || options.NewSessionClient == nil {
		client = newSessionClient(copilotOptions)
	} else {
		client = options.NewSessionClient(copilotOptions)
	}

	return &CopilotEngine{
		defaultModelID: defaultModelID,
		client:         client,
	}
}

func (e *CopilotEngine) Initialize(ctx context.Context) error {
	return ctx.Err()
}

func (e *CopilotEngine) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil req was passed to CopilotEngine.Complete")
	}

	// autostart misbehaves when triggered from several goroutines at once
	e.startOnce.Do(func() {
		e.startErr = e.client.Start(ctx)
	})
	if e.startErr != nil {
		return nil, fmt.Errorf("copilot failed to start: %w", e.startErr)
	}

	modelID := e.defaultModelID
	if req.ModelID != "" {
		modelID = req.ModelID
	}

	start := time.Now()

	ctx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	session, err := e.client.CreateSession(ctx, &copilot.SessionConfig{
		Model:               modelID,
		OnPermissionRequest: denyAllTools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	collector := &assistantCollector{}
	unsubscribe := session.On(collector.On)
	defer unsubscribe()

	unsubscribeLog := session.On(logSessionEvent)
	defer unsubscribeLog()

	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + prompt
	}

	if _, err := session.SendAndWait(ctx, copilot.MessageOptions{Prompt: prompt}); err != nil {
		return nil, fmt.Errorf("copilot session %s: %w", session.SessionID(), err)
	}

	return &CompletionResponse{
		Text:       collector.Text(),
		ModelID:    modelID,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

func (e *CopilotEngine) Shutdown(ctx context.Context) error {
	if err := e.client.Stop(); err != nil {
		slog.Info("failed to stop copilot client", "error", err)
	}
	return nil
}

// assistantCollector gathers the assistant's messages from a session.
type assistantCollector struct {
	mu    sync.Mutex
	parts []string
}

// On is passed to [copilot.Session.On].
func (c *assistantCollector) On(event copilot.SessionEvent) {
	if event.Type != copilot.AssistantMessage || event.Data.Content == nil {
		return
	}
	c.mu.Lock()
	c.parts = append(c.parts, *event.Data.Content)
	c.mu.Unlock()
}

func (c *assistantCollector) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.parts, "\n")
}

// Generation never needs tools, so every permission request is refused.
func denyAllTools(request copilot.PermissionRequest, invocation copilot.PermissionInvocation) (copilot.PermissionRequestResult, error) {
	return copilot.PermissionRequestResult{Kind: "denied-interactively-by-user"}, nil
}

func logSessionEvent(event copilot.SessionEvent) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []any{"type", event.Type}
	attrs = addIf(attrs, "content", event.Data.Content)
	attrs = addIf(attrs, "deltaContent", event.Data.DeltaContent)

	slog.Debug("copilot event", attrs...)
}

func addIf[T any](attrs []any, name string, v *T) []any {
	if v != nil {
		attrs = append(attrs, name, *v)
	}
	return attrs
}
