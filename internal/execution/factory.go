package execution

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/augmentlab/ftkit/internal/openai"
)

// Engine names accepted by NewEngine.
const (
	EngineOpenAI      = "openai"
	EngineAzureOpenAI = "azure-openai"
	EngineGemini      = "gemini"
	EngineCopilot     = "copilot"
	EngineMock        = "mock"
)

// EngineNames lists every supported engine.
var EngineNames = []string{EngineOpenAI, EngineAzureOpenAI, EngineGemini, EngineCopilot, EngineMock}

// EngineConfig carries everything an engine needs; nothing is read from
// the environment here.
type EngineConfig struct {
	Name  string
	Model string

	OpenAIAPIKey  string
	OpenAIOrg     string
	OpenAIBaseURL string

	AzureEndpoint string

	GeminiAPIKey string

	Temperature       *float64
	MaxRetries        uint64
	RequestsPerSecond float64
}

// NewEngine builds the engine named in cfg.
func NewEngine(ctx context.Context, cfg EngineConfig) (Engine, error) {
	switch cfg.Name {
	case EngineOpenAI:
		client := openai.NewClient(cfg.OpenAIBaseURL, openai.APIKeyAuth{Key: cfg.OpenAIAPIKey, Organization: cfg.OpenAIOrg}, clientOptions(cfg)...)
		return openAIEngine(client, cfg), nil

	case EngineAzureOpenAI:
		if cfg.AzureEndpoint == "" {
			return nil, fmt.Errorf("engine %s needs an Azure OpenAI endpoint", cfg.Name)
		}
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("creating Azure credential: %w", err)
		}
		client := openai.NewClient(openai.AzureBaseURL(cfg.AzureEndpoint), openai.NewTokenAuth(cred), clientOptions(cfg)...)
		return openAIEngine(client, cfg), nil

	case EngineGemini:
		return NewGeminiEngine(ctx, cfg.GeminiAPIKey, cfg.Model)

	case EngineCopilot:
		return NewCopilotEngine(cfg.Model, nil), nil

	case EngineMock:
		return NewMockEngine(cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown engine %q (want one of %v)", cfg.Name, EngineNames)
	}
}

func openAIEngine(client *openai.Client, cfg EngineConfig) *OpenAIEngine {
	e := NewOpenAIEngine(client, cfg.Model)
	if cfg.Temperature != nil {
		e.WithTemperature(*cfg.Temperature)
	}
	return e
}

func clientOptions(cfg EngineConfig) []openai.Option {
	opts := []openai.Option{openai.WithRateLimit(cfg.RequestsPerSecond)}
	if cfg.MaxRetries > 0 {
		opts = append(opts, openai.WithRetries(cfg.MaxRetries, 0))
	}
	return opts
}
