package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// tokenBucket 單一客戶端的令牌桶
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// rateLimiter 按客戶端 IP 的令牌桶限流器
type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	rate    float64 // 每秒補充的令牌數
	burst   float64
}

func newRateLimiter(requests int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		buckets: make(map[string]*tokenBucket),
		rate:    float64(requests) / window.Seconds(),
		burst:   float64(requests),
	}
}

// allow 嘗試從指定客戶端的桶中取一枚令牌
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, exists := rl.buckets[clientIP]
	if !exists {
		bucket = &tokenBucket{tokens: rl.burst, lastRefill: now}
		rl.buckets[clientIP] = bucket
	}

	// 按經過時間補充令牌
	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens += elapsed * rl.rate
	if bucket.tokens > rl.burst {
		bucket.tokens = rl.burst
	}
	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

// RateLimit 速率限制中間件
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	rl := newRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: "請求過於頻繁",
			})
			return
		}
		c.Next()
	}
}
