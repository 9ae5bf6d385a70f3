package application

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"prepdash/internal/features/chat/domain"
	"prepdash/internal/features/chat/infrastructure"
	configdomain "prepdash/internal/features/config/domain"
)

// AppendObserver is told about every message after it is visible in the
// history. The UI uses it to scroll to the newest entry.
type AppendObserver interface {
	MessageAppended(msg domain.ChatMessage, historyLen int)
}

// AppendObserverFunc adapts a function to AppendObserver.
type AppendObserverFunc func(msg domain.ChatMessage, historyLen int)

func (f AppendObserverFunc) MessageAppended(msg domain.ChatMessage, historyLen int) {
	f(msg, historyLen)
}

// Controller owns one learner's conversation. At most one request is in
// flight at a time; sends made meanwhile are ignored.
type Controller struct {
	replier  infrastructure.Replier
	cfg      configdomain.ChatConfig
	observer AppendObserver
	logger   *zap.Logger

	mu        sync.Mutex
	history   []domain.ChatMessage
	isSending bool
	draft     string
}

// NewController creates an empty conversation. observer may be nil.
func NewController(replier infrastructure.Replier, cfg configdomain.ChatConfig, observer AppendObserver, logger *zap.Logger) *Controller {
	return &Controller{
		replier:  replier,
		cfg:      cfg,
		observer: observer,
		logger:   logger,
	}
}

// SetDraft replaces the text being typed.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Conversation returns a copy of the current state.
func (c *Controller) Conversation() domain.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Conversation{
		History:   append([]domain.ChatMessage{}, c.history...),
		IsSending: c.isSending,
		Draft:     c.draft,
	}
}

// SendDraft sends the stored draft.
func (c *Controller) SendDraft(ctx context.Context) bool {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()
	return c.SendMessage(ctx, draft)
}

// SendMessage appends text as a user message and blocks until the assistant's
// reply (or a fallback) has been appended. It returns false without touching
// any state when text is blank or another send is in flight.
func (c *Controller) SendMessage(ctx context.Context, text string) bool {
	c.mu.Lock()
	if strings.TrimSpace(text) == "" || c.isSending {
		c.mu.Unlock()
		return false
	}
	userMsg := domain.ChatMessage{Role: domain.RoleUser, Text: text}
	c.history = append(c.history, userMsg)
	n := len(c.history)
	c.draft = ""
	c.isSending = true
	c.mu.Unlock()
	c.notify(userMsg, n)

	reply := c.cfg.ErrorFallback
	defer func() {
		c.mu.Lock()
		msg := domain.ChatMessage{Role: domain.RoleAssistant, Text: reply}
		c.history = append(c.history, msg)
		n := len(c.history)
		c.isSending = false
		c.mu.Unlock()
		c.notify(msg, n)
	}()

	answer, err := c.replier.GenerateChatReply(ctx, text, c.cfg.SystemInstruction)
	switch {
	case err != nil:
		c.logger.Warn("chat reply failed", zap.Error(err))
	case answer == "":
		c.logger.Info("chat reply was empty", zap.Error(domain.ErrEmptyReply))
		reply = c.cfg.EmptyFallback
	default:
		reply = answer
	}
	return true
}

func (c *Controller) notify(msg domain.ChatMessage, historyLen int) {
	if c.observer != nil {
		c.observer.MessageAppended(msg, historyLen)
	}
}
