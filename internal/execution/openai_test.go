package execution

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/augmentlab/ftkit/internal/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIEngine_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		require.NotNil(t, req.Temperature)
		assert.InDelta(t, 0.7, *req.Temperature, 1e-9)
		assert.Equal(t, "write sentences", req.Messages[len(req.Messages)-1].Content)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"1. a\n2. b"}}]}`))
	}))
	defer srv.Close()

	engine := NewOpenAIEngine(openai.NewClient(srv.URL, openai.APIKeyAuth{Key: "k"}), "gpt-3.5-turbo").WithTemperature(0.7)
	resp, err := engine.Complete(context.Background(), &CompletionRequest{Prompt: "write sentences"})
	require.NoError(t, err)
	assert.Equal(t, "1. a\n2. b", resp.Text)
	assert.Equal(t, "gpt-3.5-turbo", resp.ModelID)
}

func TestNewEngine(t *testing.T) {
	ctx := context.Background()

	e, err := NewEngine(ctx, EngineConfig{Name: EngineMock, Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &MockEngine{}, e)

	e, err = NewEngine(ctx, EngineConfig{Name: EngineOpenAI, Model: "m", OpenAIAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIEngine{}, e)

	_, err = NewEngine(ctx, EngineConfig{Name: EngineAzureOpenAI})
	require.ErrorContains(t, err, "endpoint")

	_, err = NewEngine(ctx, EngineConfig{Name: EngineGemini})
	require.ErrorContains(t, err, "API key")

	_, err = NewEngine(ctx, EngineConfig{Name: "bogus"})
	require.ErrorContains(t, err, "unknown engine")
}
