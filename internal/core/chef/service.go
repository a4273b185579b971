package chef

import (
	"context"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/gemini"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"
)

// AIService 生成服務介面，三個廚師服務共用
// 取消與逾時由呼叫端的 context 控制，本層不重試
type AIService interface {
	ProcessRequest(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error)
}

// responseText 取出回應中的文字內容，空內容視為生成失敗
func responseText(resp *gemini.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", common.NewGenerationError("no response from generation service", nil)
	}
	text := resp.Text()
	if text == "" {
		return "", common.NewGenerationError("no usable text in generation response", nil)
	}
	return text, nil
}
