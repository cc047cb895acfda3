//go:generate go tool mockgen -source copilot_session.go -destination mocks_test.go -package execution

package execution

import (
	"context"

	copilot "github.com/github/copilot-sdk/go"
)

// promptSession is the slice of a Copilot session the engine needs to send
// a single generation prompt and collect the reply.
type promptSession interface {
	On(handler copilot.SessionEventHandler) func()
	SendAndWait(ctx context.Context, options copilot.MessageOptions) (*copilot.SessionEvent, error)
	SessionID() string
}

// sessionClient starts the Copilot CLI once and opens a fresh session for
// every prompt. Sessions are never resumed.
type sessionClient interface {
	Start(ctx context.Context) error
	CreateSession(ctx context.Context, config *copilot.SessionConfig) (promptSession, error)
	Stop() error
}

func newSessionClient(opts *copilot.ClientOptions) sessionClient {
	return sdkClient{copilot.NewClient(opts)}
}

type sdkClient struct {
	*copilot.Client
}

func (c sdkClient) CreateSession(ctx context.Context, config *copilot.SessionConfig) (promptSession, error) {
	s, err := c.Client.CreateSession(ctx, config)
	if err != nil {
		return nil, err
	}
	return sdkSession{s}, nil
}

// sdkSession exposes the SDK's SessionID field as a method.
type sdkSession struct {
	*copilot.Session
}

func (s sdkSession) SessionID() string {
	return s.Session.SessionID
}
