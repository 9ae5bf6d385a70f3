package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"prepdash/internal/features/config/domain"
)

// AppConfigService defines the interface for application configuration management.
type AppConfigService interface {
	LoadAppConfig() (*domain.AppConfig, error)
	SaveAppConfig(config *domain.AppConfig) error
}

// appConfigService is the implementation of AppConfigService.
type appConfigService struct {
	configPath string
	logger     *zap.Logger
	mu         sync.RWMutex
}

// NewAppConfigService creates a new instance of appConfigService.
func NewAppConfigService(configPath string, logger *zap.Logger) AppConfigService {
	return &appConfigService{configPath: configPath, logger: logger}
}

// LoadAppConfig loads the application configuration from the configured JSON
// file. A missing file yields the built-in defaults; fields the file leaves
// empty are filled from them too.
func (s *appConfigService) LoadAppConfig() (*domain.AppConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("app config file not found, using defaults", zap.String("path", absPath))
		cfg := domain.DefaultAppConfig()
		return &cfg, nil
	}
	if err != nil {
		s.logger.Error("failed to read app config file", zap.String("path", absPath), zap.Error(err))
		return nil, fmt.Errorf("failed to read app config file %s: %w", absPath, err)
	}

	var appConfig domain.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		s.logger.Error("failed to unmarshal app config", zap.String("path", absPath), zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal app config from %s: %w", absPath, err)
	}

	appConfig = appConfig.WithDefaults()
	return &appConfig, nil
}

// SaveAppConfig saves the application configuration to the configured JSON file.
func (s *appConfigService) SaveAppConfig(appConfig *domain.AppConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := json.MarshalIndent(appConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal app config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", absPath, err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write app config to file %s: %w", absPath, err)
	}

	s.logger.Info("app config saved", zap.String("path", absPath))
	return nil
}
