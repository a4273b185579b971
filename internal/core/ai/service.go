package ai

import (
	"context"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/cache"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/gemini"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"
)

// ContentGenerator 生成服務客戶端介面
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, req *gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error)
}

// Request 統一的生成請求
type Request struct {
	Model     string
	Prompt    string
	ImageData []byte
	ImageMIME string
	Config    *gemini.GenerationConfig
}

// Service 生成服務，組合 Gemini 客戶端與快取
// 長生命週期實例，可安全併發使用
type Service struct {
	config *config.Config
	client ContentGenerator
	cache  cache.Cache
}

// NewService 創建生成服務
func NewService(cfg *config.Config, cacheBackend cache.Cache) *Service {
	return &Service{
		config: cfg,
		client: gemini.NewClient(cfg),
		cache:  cacheBackend,
	}
}

// ProcessRequest 統一對外方法，發送一次生成請求
// 純文字回應會進快取；帶圖片輸出模態的請求不經過快取（內嵌資料過大且不具重用價值）
func (s *Service) ProcessRequest(ctx context.Context, req *Request) (*gemini.GenerateContentResponse, error) {
	cacheable := s.cache != nil && !wantsImageOutput(req.Config)

	if cacheable {
		if val, err := s.cache.Get(ctx, req.Prompt, string(req.ImageData)); err == nil && val != "" {
			return textResponse(val), nil
		}
	}

	// 構建請求內容
	parts := []gemini.Part{gemini.TextPart(req.Prompt)}
	if len(req.ImageData) > 0 {
		parts = append(parts, gemini.InlineDataPart(req.ImageMIME, req.ImageData))
	}

	greq := &gemini.GenerateContentRequest{
		Contents:         []gemini.Content{gemini.NewUserContent(parts...)},
		GenerationConfig: req.Config,
	}

	// 每次實際外呼配一個追蹤用 id
	callID := common.GenerateUUID()
	start := time.Now()
	resp, err := s.client.GenerateContent(ctx, req.Model, greq)
	common.LogAICall(req.Model, time.Since(start), err, callID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if text := resp.Text(); text != "" {
			_ = s.cache.Set(ctx, req.Prompt, string(req.ImageData), text)
		}
	}

	return resp, nil
}

// wantsImageOutput 判斷請求是否要求圖片輸出模態
func wantsImageOutput(cfg *gemini.GenerationConfig) bool {
	if cfg == nil {
		return false
	}
	for _, m := range cfg.ResponseModalities {
		if m == "IMAGE" {
			return true
		}
	}
	return false
}

// textResponse 將快取文字包裝為響應結構
func textResponse(text string) *gemini.GenerateContentResponse {
	return &gemini.GenerateContentResponse{
		Candidates: []gemini.Candidate{
			{Content: gemini.Content{Role: "model", Parts: []gemini.Part{gemini.TextPart(text)}}},
		},
	}
}
