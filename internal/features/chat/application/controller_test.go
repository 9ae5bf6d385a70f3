package application

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"prepdash/internal/config"
	"prepdash/internal/features/chat/domain"
	configdomain "prepdash/internal/features/config/domain"
)

func TestMain(m *testing.M) {
	// genai pulls in opencensus, which starts a stats worker at init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type reply struct {
	text string
	err  error
}

// fakeReplier records requests. When gated, each call waits for a reply on
// its release channel after signalling started.
type fakeReplier struct {
	mu      sync.Mutex
	replies []reply
	gated   bool
	started chan struct{}
	release chan reply
	texts   []string
	systems []string
}

func (f *fakeReplier) GenerateChatReply(ctx context.Context, userText, systemInstruction string) (string, error) {
	f.mu.Lock()
	f.texts = append(f.texts, userText)
	f.systems = append(f.systems, systemInstruction)
	if !f.gated {
		r := f.replies[0]
		f.replies = f.replies[1:]
		f.mu.Unlock()
		return r.text, r.err
	}
	f.mu.Unlock()
	f.started <- struct{}{}
	r := <-f.release
	return r.text, r.err
}

func chatConfig() configdomain.ChatConfig {
	return configdomain.ChatConfig{
		SystemInstruction: "placement help only",
		EmptyFallback:     "sorry, no answer",
		ErrorFallback:     "connection problem",
	}
}

func TestSendMessageReplies(t *testing.T) {
	tests := []struct {
		name string
		r    reply
		want string
	}{
		{name: "reply", r: reply{text: "Start with arrays."}, want: "Start with arrays."},
		{name: "empty reply", r: reply{}, want: "sorry, no answer"},
		{name: "failure", r: reply{err: errors.New("dial tcp")}, want: "connection problem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeReplier{replies: []reply{tt.r}}
			c := NewController(f, chatConfig(), nil, zap.NewNop())

			assert.True(t, c.SendMessage(context.Background(), "  how do I start?  "))

			conv := c.Conversation()
			assert.Equal(t, []domain.ChatMessage{
				{Role: domain.RoleUser, Text: "  how do I start?  "},
				{Role: domain.RoleAssistant, Text: tt.want},
			}, conv.History)
			assert.False(t, conv.IsSending)
			assert.Equal(t, []string{"placement help only"}, f.systems)
		})
	}
}

func TestSendMessageBlankIsNoop(t *testing.T) {
	f := &fakeReplier{}
	c := NewController(f, chatConfig(), nil, zap.NewNop())
	c.SetDraft(" ")

	assert.False(t, c.SendMessage(context.Background(), ""))
	assert.False(t, c.SendMessage(context.Background(), " \t"))
	assert.False(t, c.SendDraft(context.Background()))

	conv := c.Conversation()
	assert.Empty(t, conv.History)
	assert.False(t, conv.IsSending)
	assert.Equal(t, " ", conv.Draft)
	assert.Empty(t, f.texts)
}

func TestSendMessageSingleFlight(t *testing.T) {
	f := &fakeReplier{gated: true, started: make(chan struct{}), release: make(chan reply)}
	c := NewController(f, chatConfig(), nil, zap.NewNop())

	done := make(chan bool)
	go func() { done <- c.SendMessage(context.Background(), "first") }()
	<-f.started

	conv := c.Conversation()
	assert.True(t, conv.IsSending)
	assert.Equal(t, []domain.ChatMessage{{Role: domain.RoleUser, Text: "first"}}, conv.History,
		"the user message is visible before the reply arrives")

	assert.False(t, c.SendMessage(context.Background(), "second"), "rejected while a request is in flight")
	assert.Len(t, c.Conversation().History, 1)

	f.release <- reply{text: "answer one"}
	assert.True(t, <-done)
	assert.False(t, c.Conversation().IsSending)

	go func() { done <- c.SendMessage(context.Background(), "second") }()
	<-f.started
	f.release <- reply{text: "answer two"}
	assert.True(t, <-done)

	assert.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleUser, Text: "first"},
		{Role: domain.RoleAssistant, Text: "answer one"},
		{Role: domain.RoleUser, Text: "second"},
		{Role: domain.RoleAssistant, Text: "answer two"},
	}, c.Conversation().History)
	assert.Equal(t, []string{"first", "second"}, f.texts, "each turn is sent on its own")
}

func TestSendDraftClearsDraft(t *testing.T) {
	f := &fakeReplier{replies: []reply{{text: "ok"}}}
	c := NewController(f, chatConfig(), nil, zap.NewNop())
	c.SetDraft("mock interview tips?")

	require.True(t, c.SendDraft(context.Background()))
	conv := c.Conversation()
	assert.Empty(t, conv.Draft)
	assert.Equal(t, "mock interview tips?", conv.History[0].Text)
}

func TestObserverSeesCommittedAppends(t *testing.T) {
	f := &fakeReplier{replies: []reply{{text: "ok"}}}
	var c *Controller
	var seen []int
	observer := AppendObserverFunc(func(msg domain.ChatMessage, historyLen int) {
		// The appended message is already readable when the observer runs.
		h := c.Conversation().History
		require.Len(t, h, historyLen)
		assert.Equal(t, msg, h[historyLen-1])
		seen = append(seen, historyLen)
	})
	c = NewController(f, chatConfig(), observer, zap.NewNop())

	c.SendMessage(context.Background(), "hi")
	assert.Equal(t, []int{1, 2}, seen)
}

func TestChatServiceController(t *testing.T) {
	appConfig := config.NewAppConfigService(filepath.Join(t.TempDir(), "app.json"), zap.NewNop())
	svc := NewChatService(&fakeReplier{replies: []reply{{text: "x"}}}, appConfig, LoggingObserver(zap.NewNop()), zap.NewNop())

	a, err := svc.Controller("u1")
	require.NoError(t, err)
	b, err := svc.Controller("u1")
	require.NoError(t, err)
	other, err := svc.Controller("u2")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)

	a.SendMessage(context.Background(), "hello")
	assert.Len(t, a.Conversation().History, 2)
	assert.Empty(t, other.Conversation().History)
	assert.Equal(t, configdomain.DefaultAppConfig().Chat.SystemInstruction, a.cfg.SystemInstruction)
}
