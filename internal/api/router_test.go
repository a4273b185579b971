package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/cache"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routerConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Version: "1.0.0", Debug: true},
		Gemini: config.GeminiConfig{
			APIKey:      "test-key",
			TextModel:   "gemini-2.5-flash",
			VisionModel: "gemini-2.5-flash",
			ImageModel:  "gemini-2.5-flash-image",
			Timeout:     time.Second,
		},
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         10,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
		Queue:     config.QueueConfig{Workers: 2, MaxSize: 8},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Image:     config.ImageConfig{MaxSizeBytes: 1 << 20},
	}
}

func TestRouterHealth(t *testing.T) {
	cfg := routerConfig()
	backend, err := cache.New(cfg)
	require.NoError(t, err)
	defer backend.Close()

	router := NewRouter(cfg, backend)
	defer router.Queue.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.Engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	// 記憶體快取與隊列統計要出現在健康檢查中
	assert.Contains(t, body, "cache")
	assert.Contains(t, body, "queue")
}

func TestRouterProbes(t *testing.T) {
	cfg := routerConfig()
	router := NewRouter(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.Engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec = httptest.NewRecorder()
	router.Engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// 隊列關閉後就緒探針要翻紅
	router.Queue.Close()
	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec = httptest.NewRecorder()
	router.Engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouterUnknownRoute(t *testing.T) {
	cfg := routerConfig()
	router := NewRouter(cfg, nil)
	defer router.Queue.Close()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.Engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterChefRoutesRegistered(t *testing.T) {
	cfg := routerConfig()
	router := NewRouter(cfg, nil)
	defer router.Queue.Close()

	routes := make(map[string]bool)
	for _, r := range router.Engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	assert.True(t, routes["POST /api/v1/chef/ingredients/extract"])
	assert.True(t, routes["POST /api/v1/chef/recipes/generate"])
	assert.True(t, routes["POST /api/v1/chef/recipes/illustrate"])
	assert.True(t, routes["POST /api/v1/chef/recipes/illustrate/batch"])
}
