package chef

import (
	"context"
	"errors"
	"net/http"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/queue"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError 將服務層錯誤映射為 HTTP 響應
// 傳輸層與生成層錯誤都算上游故障，回 502 並以錯誤代碼區分
func respondError(c *gin.Context, err error) {
	common.LogWarn("請求失敗",
		zap.String("request_id", requestid.Get(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	var customErr *common.CustomError
	switch {
	case common.IsValidationError(err):
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
	case errors.As(err, &customErr):
		c.JSON(customErr.Status, common.ErrorResponse{
			Code:    customErr.Code,
			Message: customErr.Message,
		})
	case common.IsTransportError(err):
		c.JSON(http.StatusBadGateway, common.ErrorResponse{
			Code:    common.ErrCodeTransportError,
			Message: "上游生成服務無法連線",
		})
	case common.IsGenerationError(err):
		c.JSON(http.StatusBadGateway, common.ErrorResponse{
			Code:    common.ErrCodeGenerationError,
			Message: "生成內容無法使用",
		})
	case errors.Is(err, queue.ErrQueueFull), errors.Is(err, queue.ErrQueueClosed):
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrCodeServiceUnavailable,
			Message: "服務暫時不可用",
		})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, common.ErrorResponse{
			Code:    common.ErrCodeGatewayTimeout,
			Message: "網關超時",
		})
	default:
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Code:    common.ErrCodeInternalError,
			Message: "服務器內部錯誤",
		})
	}
}
