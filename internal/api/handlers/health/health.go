package health

import (
	"net/http"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/queue"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// StatsProvider 提供統計資訊的元件
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Handler 健康檢查端點
type Handler struct {
	config    *config.Config
	startTime time.Time
	cache     StatsProvider
	queue     *queue.Manager
}

// NewHandler 創建健康檢查端點
// cache 可為 nil（快取停用或後端不提供統計）
func NewHandler(cfg *config.Config, cache StatsProvider, queueManager *queue.Manager) *Handler {
	return &Handler{
		config:    cfg,
		startTime: time.Now(),
		cache:     cache,
		queue:     queueManager,
	}
}

// Live 存活探針，行程活著就回 ok
// GET /health/live
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready 就緒探針，後台隊列收攤後回 503
// GET /health/ready
func (h *Handler) Ready(c *gin.Context) {
	if h.queue != nil {
		if _, err := h.queue.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Check 健康檢查
// GET /health
func (h *Handler) Check(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"version": h.config.App.Version,
		"uptime":  time.Since(h.startTime).String(),
	}

	if h.cache != nil {
		resp["cache"] = h.cache.GetStats()
	}
	if h.queue != nil {
		resp["queue"] = h.queue.GetStats()
	}

	c.JSON(http.StatusOK, resp)
}
