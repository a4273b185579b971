package gemini

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client Gemini REST 客戶端
// 單一實例可安全併發使用，請求間不共享可變狀態
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 Gemini 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.Gemini.APIKey).
		SetTimeout(cfg.Gemini.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// GenerateContent 發送一次生成請求
// 傳輸層失敗（網路、非 200 狀態）回傳 TransportError；取消的請求視為完整失敗
func (c *Client) GenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/models/%s:generateContent", model))

	if err != nil {
		return nil, common.NewTransportError("failed to send request to Gemini", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("Gemini API returned error",
			zap.String("model", model),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return nil, common.NewTransportError(fmt.Sprintf("Gemini API returned status %d", resp.StatusCode()), nil)
	}

	// 解析回應
	var result GenerateContentResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, common.NewGenerationError("failed to parse Gemini response", err)
	}

	return &result, nil
}
