package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Deduplication 重複請求攔截中間件
// 短窗口內同方法、同路徑、同請求體的請求視為誤觸連點，直接回 409
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var mu sync.Mutex
	seen := make(map[string]time.Time)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
				Code:    common.ErrCodeInvalidRequest,
				Message: "無法讀取請求體",
			})
			return
		}
		// 讀過的 body 要放回去給 handler 用
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		sum := sha256.Sum256(append([]byte(c.Request.Method+" "+c.Request.URL.Path+"\x00"), body...))
		key := hex.EncodeToString(sum[:])

		now := time.Now()
		mu.Lock()
		if last, ok := seen[key]; ok && now.Sub(last) < window {
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusConflict, common.ErrorResponse{
				Code:    common.ErrCodeConflict,
				Message: "重複的請求",
			})
			return
		}
		seen[key] = now

		// 順手清掉過期條目，避免 map 無限成長
		for k, ts := range seen {
			if now.Sub(ts) >= window {
				delete(seen, k)
			}
		}
		mu.Unlock()

		c.Next()
	}
}
