package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"prepdash/internal/config"
	"prepdash/internal/features/config/domain"
)

var (
	motivationProviders = map[string]bool{"": true, "openai": true, "mock": true}
	chatProviders       = map[string]bool{"": true, "gemini": true, "openai": true, "mock": true}
)

// AppConfigHandler exposes the motivation and chat tunables.
type AppConfigHandler struct {
	appConfigService config.AppConfigService
}

// NewAppConfigHandler creates a new AppConfigHandler.
func NewAppConfigHandler(appConfigService config.AppConfigService) *AppConfigHandler {
	return &AppConfigHandler{
		appConfigService: appConfigService,
	}
}

// GetAppConfigHandler returns the effective config, defaults included.
func (h *AppConfigHandler) GetAppConfigHandler(c *gin.Context) {
	appConfig, err := h.appConfigService.LoadAppConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard config: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, appConfig)
}

// SaveAppConfigHandler stores new prompts, fallbacks and providers. Learners
// mounted afterwards pick them up; the chat provider itself is chosen at
// start-up.
func (h *AppConfigHandler) SaveAppConfigHandler(c *gin.Context) {
	var appConfig domain.AppConfig
	if err := c.ShouldBindJSON(&appConfig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate(appConfig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.appConfigService.SaveAppConfig(&appConfig); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save dashboard config: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, appConfig.WithDefaults())
}

func validate(cfg domain.AppConfig) error {
	m := cfg.Motivation
	if t := m.ModelParams.Temperature; t < 0 || t > 1 {
		return fmt.Errorf("motivation temperature must be within [0,1], got %v", t)
	}
	if m.ModelParams.MaxTokens < 0 {
		return fmt.Errorf("motivation max_tokens must not be negative, got %d", m.ModelParams.MaxTokens)
	}
	if !motivationProviders[m.Provider] {
		return fmt.Errorf("unknown motivation provider %q", m.Provider)
	}
	if !chatProviders[cfg.Chat.Provider] {
		return fmt.Errorf("unknown chat provider %q", cfg.Chat.Provider)
	}
	return nil
}

// Register mounts the config routes on r.
func (h *AppConfigHandler) Register(r gin.IRouter) {
	r.GET("/app", h.GetAppConfigHandler)
	r.POST("/app", h.SaveAppConfigHandler)
}
