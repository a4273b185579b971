package middleware

import (
	"net/http"

	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// BodySizeLimit 請求體大小限制中間件
// 照片以 base64 內嵌在 JSON 裡，上限要留 4/3 的編碼膨脹空間
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
				Code:    common.ErrCodeInvalidRequest,
				Message: "請求體過大",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
