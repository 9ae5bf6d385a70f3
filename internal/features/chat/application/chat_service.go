package application

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"prepdash/internal/config"
	"prepdash/internal/features/chat/domain"
	"prepdash/internal/features/chat/infrastructure"
)

// ChatService hands out one Controller per learner. Conversations live only
// in memory.
type ChatService interface {
	Controller(learnerID string) (*Controller, error)
}

// chatService is the implementation of ChatService.
type chatService struct {
	replier          infrastructure.Replier
	appConfigService config.AppConfigService
	newObserver      func(learnerID string) AppendObserver
	logger           *zap.Logger

	mu          sync.RWMutex
	controllers map[string]*Controller
}

// NewChatService creates a new instance of chatService. newObserver may be nil.
func NewChatService(replier infrastructure.Replier, appConfigService config.AppConfigService, newObserver func(learnerID string) AppendObserver, logger *zap.Logger) ChatService {
	return &chatService{
		replier:          replier,
		appConfigService: appConfigService,
		newObserver:      newObserver,
		logger:           logger,
		controllers:      make(map[string]*Controller),
	}
}

func (s *chatService) Controller(learnerID string) (*Controller, error) {
	s.mu.RLock()
	c, ok := s.controllers[learnerID]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.controllers[learnerID]; ok {
		return c, nil
	}
	appConfig, err := s.appConfigService.LoadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}
	var observer AppendObserver
	if s.newObserver != nil {
		observer = s.newObserver(learnerID)
	}
	c = NewController(s.replier, appConfig.Chat, observer, s.logger.With(zap.String("learner_id", learnerID)))
	s.controllers[learnerID] = c
	return c, nil
}

// LoggingObserver records every append at debug level.
func LoggingObserver(logger *zap.Logger) func(learnerID string) AppendObserver {
	return func(learnerID string) AppendObserver {
		return AppendObserverFunc(func(msg domain.ChatMessage, historyLen int) {
			logger.Debug("chat message appended",
				zap.String("learner_id", learnerID),
				zap.String("role", string(msg.Role)),
				zap.Int("history_len", historyLen))
		})
	}
}
