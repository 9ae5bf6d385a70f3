package infrastructure

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"prepdash/internal/features/chat/domain"
)

// Replier generates a single, context-free reply to userText. No earlier
// turns are sent.
type Replier interface {
	GenerateChatReply(ctx context.Context, userText, systemInstruction string) (string, error)
}

// ReplierConfig selects and configures a Replier.
type ReplierConfig struct {
	Provider string // "gemini", "openai" or "mock"
	Model    string
	APIKey   string
	BaseURL  string
}

// NewReplier creates the Replier named by cfg.Provider.
func NewReplier(ctx context.Context, cfg ReplierConfig, logger *zap.Logger) (Replier, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiReplier(ctx, cfg.APIKey, cfg.Model, logger)
	case "openai":
		return NewOpenAIReplier(cfg.APIKey, cfg.BaseURL, cfg.Model, logger)
	case "mock":
		return NewMockReplier("PrepBot"), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, cfg.Provider)
	}
}
