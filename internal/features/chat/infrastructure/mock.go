package infrastructure

import (
	"context"
	"fmt"
)

// MockReplier echoes the question back, for running without an API key.
type MockReplier struct {
	Prefix string
}

func NewMockReplier(prefix string) *MockReplier {
	return &MockReplier{Prefix: prefix}
}

func (m *MockReplier) GenerateChatReply(ctx context.Context, userText, systemInstruction string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s] You asked: %q. Connect a model provider for real answers.", m.Prefix, userText), nil
}
