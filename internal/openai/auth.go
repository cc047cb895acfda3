package openai

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// CognitiveServicesScope is the Entra ID scope for Azure OpenAI.
const CognitiveServicesScope = "https://cognitiveservices.azure.com/.default"

// Authorizer decorates outgoing requests with credentials.
type Authorizer interface {
	Authorize(ctx context.Context, req *http.Request) error
}

// APIKeyAuth sends a bearer API key and an optional organization header.
type APIKeyAuth struct {
	Key          string
	Organization string
}

func (a APIKeyAuth) Authorize(_ context.Context, req *http.Request) error {
	if a.Key == "" {
		return fmt.Errorf("%w: no API key configured", ErrProviderRequest)
	}
	req.Header.Set("Authorization", "Bearer "+a.Key)
	if a.Organization != "" {
		req.Header.Set("OpenAI-Organization", a.Organization)
	}
	return nil
}

// TokenAuth obtains bearer tokens from an Azure credential and reuses them
// until shortly before they expire.
type TokenAuth struct {
	Credential azcore.TokenCredential
	Scopes     []string

	mu    sync.Mutex
	token azcore.AccessToken
}

// NewTokenAuth returns a TokenAuth for the Azure OpenAI scope.
func NewTokenAuth(cred azcore.TokenCredential) *TokenAuth {
	return &TokenAuth{Credential: cred, Scopes: []string{CognitiveServicesScope}}
}

func (a *TokenAuth) Authorize(ctx context.Context, req *http.Request) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token.Token == "" || time.Until(a.token.ExpiresOn) < 2*time.Minute {
		tok, err := a.Credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: a.Scopes})
		if err != nil {
			return fmt.Errorf("acquiring Azure token: %w", err)
		}
		a.token = tok
	}
	req.Header.Set("Authorization", "Bearer "+a.token.Token)
	return nil
}
