package application

import (
	"context"
	"sync"

	"go.uber.org/zap"

	configdomain "prepdash/internal/features/config/domain"
	"prepdash/internal/features/motivation/domain"
	"prepdash/internal/features/motivation/infrastructure"
)

// Orchestrator owns one learner's motivation feed. Every refresh opens a
// fresh session and runs one query in it.
//
// Refreshes are not serialized: overlapping refreshes each run to completion
// and whichever settles last decides the text. settle is the only place that
// writes the result.
type Orchestrator struct {
	client      infrastructure.SessionClient
	credential  string
	displayName string
	cfg         configdomain.MotivationConfig
	logger      *zap.Logger

	mu        sync.RWMutex
	text      string
	isLoading bool
	wg        sync.WaitGroup
}

// NewOrchestrator creates an Orchestrator showing cfg.Placeholder.
func NewOrchestrator(client infrastructure.SessionClient, credential, displayName string, cfg configdomain.MotivationConfig, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client:      client,
		credential:  credential,
		displayName: displayName,
		cfg:         cfg,
		logger:      logger.With(zap.String("learner", displayName)),
		text:        cfg.Placeholder,
	}
}

// State returns the current text and loading flag.
func (o *Orchestrator) State() domain.State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return domain.State{Text: o.text, IsLoading: o.isLoading}
}

// Refresh fetches a new motivation text and blocks until it has settled.
// Failures never escape: they settle to one of the fallback strings.
func (o *Orchestrator) Refresh(ctx context.Context) {
	o.begin()
	o.run(ctx)
}

// RefreshAsync marks the feed as loading and fetches in the background. The
// returned channel is closed once the refresh has settled. There is no way to
// abort it.
func (o *Orchestrator) RefreshAsync(ctx context.Context) <-chan struct{} {
	o.begin()
	done := make(chan struct{})
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer close(done)
		o.run(ctx)
	}()
	return done
}

func (o *Orchestrator) begin() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.isLoading = true
}

func (o *Orchestrator) run(ctx context.Context) {
	text := o.cfg.ErrorFallback
	defer func() { o.settle(text) }()

	reply, err := o.fetch(ctx)
	switch {
	case err != nil:
		o.logger.Warn("motivation fetch failed", zap.Error(err))
	case reply == "":
		o.logger.Info("motivation fetch returned empty reply", zap.Error(domain.ErrEmptyReply))
		text = o.cfg.EmptyFallback
	default:
		text = reply
	}
}

// Wait blocks until every background refresh has settled.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) fetch(ctx context.Context) (string, error) {
	sessionID, err := o.client.CreateSession(ctx, o.displayName, o.credential)
	if err != nil {
		return "", err
	}
	return o.client.Query(ctx, sessionID, o.cfg.Prompt, o.credential, domain.QueryOptions{
		FulfillmentPrompt: o.cfg.FulfillmentPrompt,
		Temperature:       o.cfg.ModelParams.Temperature,
		MaxTokens:         o.cfg.ModelParams.MaxTokens,
	})
}

// settle publishes text and clears the loading flag, even if another refresh
// is still pending.
func (o *Orchestrator) settle(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.text = text
	o.isLoading = false
}
