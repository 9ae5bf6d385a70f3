package infrastructure

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"prepdash/internal/features/motivation/domain"
)

var mockQuotes = []string{
	"Consistency beats intensity. Solve one more problem today.",
	"Every rejection is a rehearsal for the offer that fits you.",
	"Your future self is built by what you practice now.",
}

// MockSessionClient serves canned quotes without any network access.
type MockSessionClient struct {
	next atomic.Uint64
}

// NewMockSessionClient creates a MockSessionClient.
func NewMockSessionClient() *MockSessionClient {
	return &MockSessionClient{}
}

func (m *MockSessionClient) CreateSession(ctx context.Context, displayName, credential string) (string, error) {
	return fmt.Sprintf("mock-%s", uuid.NewString()), nil
}

func (m *MockSessionClient) Query(ctx context.Context, sessionID, userText, credential string, opts domain.QueryOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := m.next.Add(1) - 1
	return mockQuotes[i%uint64(len(mockQuotes))], nil
}
