// Package config loads credentials and endpoints from the process
// environment, after reading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Environment variables read by LoadEnv.
const (
	EnvOpenAIAPIKey        = "OPENAI_API_KEY"
	EnvOpenAIOrg           = "OPENAI_ORG_ID"
	EnvOpenAIBaseURL       = "OPENAI_BASE_URL"
	EnvAzureOpenAIEndpoint = "AZURE_OPENAI_ENDPOINT"
	EnvGeminiAPIKey        = "GEMINI_API_KEY"
	EnvWandbAPIKey         = "WANDB_API_KEY"
	EnvWandbEntity         = "WANDB_ENTITY"
	EnvWandbProject        = "WANDB_PROJECT"
	EnvWandbBaseURL        = "WANDB_BASE_URL"
	EnvForceColor          = "FORCE_COLOR"
	EnvNoColor             = "NO_COLOR"
)

// Env holds everything ftkit reads from the environment. It is built once
// in main and passed down explicitly.
type Env struct {
	OpenAIAPIKey        string
	OpenAIOrg           string
	OpenAIBaseURL       string
	AzureOpenAIEndpoint string
	GeminiAPIKey        string

	WandbAPIKey  string
	WandbEntity  string
	WandbProject string
	WandbBaseURL string

	ForceColor bool
	NoColor    bool
}

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// LoadEnv reads the given dotenv files (".env" when none are given) into
// the process environment without overriding variables already set, then
// returns the resulting Env. Missing dotenv files are not an error.
func LoadEnv(files ...string) (*Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	env := FromLookup(os.LookupEnv)
	return &env, nil
}

// FromLookup builds an Env from lookup.
func FromLookup(lookup LookupFunc) Env {
	str := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	return Env{
		OpenAIAPIKey:        str(EnvOpenAIAPIKey),
		OpenAIOrg:           str(EnvOpenAIOrg),
		OpenAIBaseURL:       str(EnvOpenAIBaseURL),
		AzureOpenAIEndpoint: str(EnvAzureOpenAIEndpoint),
		GeminiAPIKey:        str(EnvGeminiAPIKey),
		WandbAPIKey:         str(EnvWandbAPIKey),
		WandbEntity:         str(EnvWandbEntity),
		WandbProject:        str(EnvWandbProject),
		WandbBaseURL:        str(EnvWandbBaseURL),
		ForceColor:          envFlag(str(EnvForceColor)),
		// Any non-empty NO_COLOR disables colour.
		NoColor: str(EnvNoColor) != "",
	}
}

// envFlag treats unparseable non-empty values as set, so FORCE_COLOR=yes
// and FORCE_COLOR=1 both count.
func envFlag(v string) bool {
	if v == "" {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return true
	}
	return b
}

// FirstNonEmpty returns the first non-empty value, letting flags override
// project config which overrides the environment.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
