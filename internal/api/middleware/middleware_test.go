package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postBody(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestBodySizeLimit(t *testing.T) {
	engine := gin.New()
	engine.Use(BodySizeLimit(16))
	engine.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := postBody(engine, "/x", "small")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postBody(engine, "/x", strings.Repeat("a", 64))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, Requests: 3, Window: time.Minute},
	}
	engine := gin.New()
	engine.Use(RateLimit(cfg))
	engine.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := postBody(engine, "/x", "{}")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := postBody(engine, "/x", "{}")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{Enabled: false, Requests: 1, Window: time.Minute},
	}
	engine := gin.New()
	engine.Use(RateLimit(cfg))
	engine.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		rec := postBody(engine, "/x", "{}")
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestDeduplication(t *testing.T) {
	engine := gin.New()
	engine.Use(Deduplication(100 * time.Millisecond))
	var bodies []string
	engine.POST("/x", func(c *gin.Context) {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(c.Request.Body)
		bodies = append(bodies, buf.String())
		c.Status(http.StatusOK)
	})

	rec := postBody(engine, "/x", `{"a":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// 窗口內相同請求被攔截
	rec = postBody(engine, "/x", `{"a":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// 不同請求體放行
	rec = postBody(engine, "/x", `{"a":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// 窗口過後放行
	time.Sleep(150 * time.Millisecond)
	rec = postBody(engine, "/x", `{"a":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// handler 仍讀得到完整請求體
	assert.Equal(t, []string{`{"a":1}`, `{"a":2}`, `{"a":1}`}, bodies)
}

func TestDeduplicationSkipsGet(t *testing.T) {
	engine := gin.New()
	engine.Use(Deduplication(time.Minute))
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery())
	engine.POST("/x", func(c *gin.Context) { panic("boom") })

	rec := postBody(engine, "/x", "{}")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
