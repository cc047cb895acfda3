package execution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEngine_DefaultOutput(t *testing.T) {
	engine := NewMockEngine("test-model")
	require.NoError(t, engine.Initialize(context.Background()))

	resp, err := engine.Complete(context.Background(), &CompletionRequest{Prompt: "examples\nwrite more about calling"})
	require.NoError(t, err)
	assert.Equal(t, "test-model", resp.ModelID)
	assert.Contains(t, resp.Text, "1. Mock response 0.1 for: write more about calling")
	assert.Contains(t, resp.Text, "3. Mock response 0.3")

	resp, err = engine.Complete(context.Background(), &CompletionRequest{ModelID: "other", Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "other", resp.ModelID)
	assert.Contains(t, resp.Text, "Mock response 1.1")
	assert.Equal(t, 2, engine.Calls())

	require.NoError(t, engine.Shutdown(context.Background()))
}

func TestMockEngine_CancelledContext(t *testing.T) {
	engine := NewMockEngine("m")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Complete(ctx, &CompletionRequest{Prompt: "x"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, engine.Calls())
}
