package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"prepdash/internal/config"
	catalogueapp "prepdash/internal/features/catalogue/application"
	catalogueinfra "prepdash/internal/features/catalogue/infrastructure"
	chatapp "prepdash/internal/features/chat/application"
	chatinfra "prepdash/internal/features/chat/infrastructure"
	configdomain "prepdash/internal/features/config/domain"
	motivationapp "prepdash/internal/features/motivation/application"
	motivationinfra "prepdash/internal/features/motivation/infrastructure"
	tracksapp "prepdash/internal/features/tracks/application"
)

// app holds the wired services.
type app struct {
	appConfigService config.AppConfigService
	catalogue        catalogueapp.CatalogueService
	// watcher is nil when the built-in catalogue is served
	watcher    *catalogueinfra.Watcher
	dashboard  tracksapp.DashboardService
	motivation motivationapp.MotivationService
	chat       chatapp.ChatService
}

// newApp wires every feature from env and the app config file.
func newApp(ctx context.Context, env config.Env, logger *zap.Logger) (*app, error) {
	appConfigService := config.NewAppConfigService(env.AppConfigPath, logger)
	appConfig, err := appConfigService.LoadAppConfig()
	if err != nil {
		return nil, err
	}

	a := &app{appConfigService: appConfigService}
	if err := a.initCatalogue(appConfig, logger); err != nil {
		return nil, err
	}
	a.dashboard = tracksapp.NewDashboardService(a.catalogue, logger)

	if err := a.initMotivation(appConfig, env, logger); err != nil {
		return nil, err
	}
	if err := a.initChat(ctx, appConfig, env, logger); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) initCatalogue(appConfig *configdomain.AppConfig, logger *zap.Logger) error {
	path := appConfig.CataloguePath
	if cataloguePath != "" {
		path = cataloguePath
	}
	if path == "" {
		logger.Info("serving built-in catalogue")
		a.catalogue = catalogueapp.NewCatalogueService(catalogueinfra.NewStaticSource(catalogueinfra.Default()))
		return nil
	}

	w, err := catalogueinfra.NewWatcher(path, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}
	logger.Info("serving catalogue file", zap.String("path", path))
	a.watcher = w
	a.catalogue = catalogueapp.NewCatalogueService(w)
	return nil
}

func (a *app) initMotivation(appConfig *configdomain.AppConfig, env config.Env, logger *zap.Logger) error {
	sessions, err := motivationinfra.NewSessionClient(motivationinfra.SessionClientConfig{
		Provider: appConfig.Motivation.Provider,
		BaseURL:  env.OpenAIBaseURL,
		Model:    appConfig.Motivation.ModelParams.Model,
	}, logger)
	if err != nil {
		return err
	}
	a.motivation = motivationapp.NewMotivationService(sessions, env.MotivationAPIKey, a.appConfigService, logger)
	return nil
}

func (a *app) initChat(ctx context.Context, appConfig *configdomain.AppConfig, env config.Env, logger *zap.Logger) error {
	replierCfg := chatinfra.ReplierConfig{
		Provider: appConfig.Chat.Provider,
		Model:    appConfig.Chat.Model,
		BaseURL:  env.OpenAIBaseURL,
	}
	switch appConfig.Chat.Provider {
	case "gemini":
		replierCfg.APIKey = env.GeminiAPIKey
	case "openai":
		replierCfg.APIKey = env.OpenAIAPIKey
	}
	replier, err := chatinfra.NewReplier(ctx, replierCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create chat replier: %w", err)
	}
	a.chat = chatapp.NewChatService(replier, a.appConfigService, chatapp.LoggingObserver(logger), logger)
	return nil
}
