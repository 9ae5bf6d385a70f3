package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prepdash/internal/config"
	"prepdash/internal/features/config/domain"
)

func TestAppConfigRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := config.NewAppConfigService(filepath.Join(t.TempDir(), "app.json"), zap.NewNop())
	r := gin.New()
	NewAppConfigHandler(svc).Register(r.Group("/api/config"))

	req := httptest.NewRequest(http.MethodGet, "/api/config/app", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.AppConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.DefaultAppConfig(), got)

	got.Chat.Provider = "mock"
	body, err := json.Marshal(got)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/config/app", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var echoed domain.AppConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &echoed))
	assert.Equal(t, "mock", echoed.Chat.Provider)

	saved, err := svc.LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "mock", saved.Chat.Provider)

	for _, body := range []string{
		`{"motivation":{"model_params":{"temperature":1.5}}}`,
		`{"motivation":{"model_params":{"max_tokens":-1}}}`,
		`{"motivation":{"provider":"gemini"}}`,
		`{"chat":{"provider":"claude"}}`,
	} {
		req = httptest.NewRequest(http.MethodPost, "/api/config/app", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	saved, err = svc.LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "mock", saved.Chat.Provider, "rejected configs are not saved")
}
