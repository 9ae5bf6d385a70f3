package application

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"prepdash/internal/config"
	"prepdash/internal/features/motivation/domain"
	"prepdash/internal/features/motivation/infrastructure"
)

// MotivationService tracks one Orchestrator per mounted learner.
type MotivationService interface {
	// Mount returns the learner's orchestrator, replacing it and starting the
	// automatic refresh when the learner is new or their display name changed.
	Mount(ctx context.Context, learnerID, displayName string) (*Orchestrator, error)
	Get(learnerID string) (*Orchestrator, error)
	// Refresh starts a user-initiated refresh in the background.
	Refresh(ctx context.Context, learnerID string) (<-chan struct{}, error)
	// Shutdown waits for the background refreshes of mounted learners, and of
	// orchestrators replaced by Mount, to settle.
	Shutdown()
}

type mounted struct {
	displayName  string
	orchestrator *Orchestrator
}

// motivationService is the implementation of MotivationService.
type motivationService struct {
	client           infrastructure.SessionClient
	credential       string
	appConfigService config.AppConfigService
	logger           *zap.Logger

	mu       sync.RWMutex
	learners map[string]*mounted
	// retiring tracks orchestrators replaced by Mount until their refreshes settle
	retiring sync.WaitGroup
}

// NewMotivationService creates a new instance of motivationService. The
// credential is handed to every session the orchestrators create.
func NewMotivationService(client infrastructure.SessionClient, credential string, appConfigService config.AppConfigService, logger *zap.Logger) MotivationService {
	return &motivationService{
		client:           client,
		credential:       credential,
		appConfigService: appConfigService,
		logger:           logger,
		learners:         make(map[string]*mounted),
	}
}

func (s *motivationService) Mount(ctx context.Context, learnerID, displayName string) (*Orchestrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.learners[learnerID]
	if ok && prev.displayName == displayName {
		return prev.orchestrator, nil
	}

	appConfig, err := s.appConfigService.LoadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	o := NewOrchestrator(s.client, s.credential, displayName, appConfig.Motivation, s.logger)
	s.learners[learnerID] = &mounted{displayName: displayName, orchestrator: o}
	if ok {
		s.retire(prev.orchestrator)
	}
	s.logger.Info("learner mounted", zap.String("learner_id", learnerID))

	o.RefreshAsync(context.WithoutCancel(ctx))
	return o, nil
}

func (s *motivationService) Get(learnerID string) (*Orchestrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.learners[learnerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownLearner, learnerID)
	}
	return m.orchestrator, nil
}

func (s *motivationService) Refresh(ctx context.Context, learnerID string) (<-chan struct{}, error) {
	o, err := s.Get(learnerID)
	if err != nil {
		return nil, err
	}
	return o.RefreshAsync(context.WithoutCancel(ctx)), nil
}

func (s *motivationService) Shutdown() {
	s.mu.RLock()
	all := make([]*Orchestrator, 0, len(s.learners))
	for _, m := range s.learners {
		all = append(all, m.orchestrator)
	}
	s.mu.RUnlock()
	for _, o := range all {
		o.Wait()
	}
	s.retiring.Wait()
}

func (s *motivationService) retire(o *Orchestrator) {
	s.retiring.Add(1)
	go func() {
		defer s.retiring.Done()
		o.Wait()
	}()
}
