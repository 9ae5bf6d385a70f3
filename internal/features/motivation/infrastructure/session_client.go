package infrastructure

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"prepdash/internal/features/motivation/domain"
)

// SessionClient is the remote service that scopes one motivation query to a
// short-lived session.
type SessionClient interface {
	// CreateSession opens a session on behalf of the named learner.
	CreateSession(ctx context.Context, displayName, credential string) (string, error)

	// Query sends userText within the session and returns the reply, which may be empty.
	Query(ctx context.Context, sessionID, userText, credential string, opts domain.QueryOptions) (string, error)
}

// SessionClientConfig selects and configures a SessionClient.
type SessionClientConfig struct {
	Provider string // "openai" or "mock"
	BaseURL  string
	Model    string
}

// NewSessionClient creates the SessionClient named by cfg.Provider.
func NewSessionClient(cfg SessionClientConfig, logger *zap.Logger) (SessionClient, error) {
	switch cfg.Provider {
	case "openai", "":
		return NewOpenAISessionClient(cfg.BaseURL, cfg.Model, logger), nil
	case "mock":
		return NewMockSessionClient(), nil
	default:
		return nil, fmt.Errorf("unsupported motivation provider: %s", cfg.Provider)
	}
}
