package chef

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/gemini"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// 配圖提示詞：固定風格，讓同一批食譜的配圖視覺一致
const illustrationPromptTemplate = `A professional overhead food photograph of %s, plated on a simple ceramic dish, minimalist styling, soft blue background, natural light, square composition.`

// 佔位圖樣板，只依標題決定，同標題永遠得到同一個 URL
const placeholderURLTemplate = "https://placehold.co/512x512/e8f1fa/35506b.png?text=%s"

// ImageService 食譜配圖服務
type ImageService struct {
	config    *config.Config
	aiService AIService
}

// NewImageService 創建食譜配圖服務
func NewImageService(cfg *config.Config, aiService AIService) *ImageService {
	return &ImageService{
		config:    cfg,
		aiService: aiService,
	}
}

// Illustrate 為食譜標題生成配圖
// 成功時回傳 data URI；回應沒有圖片內容屬正常路徑，回退到確定性的佔位圖 URL
// 傳輸層錯誤照實回傳，不以佔位圖掩蓋
func (s *ImageService) Illustrate(ctx context.Context, recipeTitle string) (string, error) {
	if recipeTitle == "" {
		return "", common.NewValidationError("recipe title is empty")
	}

	resp, err := s.aiService.ProcessRequest(ctx, &ai.Request{
		Model:  s.config.Gemini.ImageModel,
		Prompt: fmt.Sprintf(illustrationPromptTemplate, recipeTitle),
		Config: &gemini.GenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
			ImageConfig:        &gemini.ImageConfig{AspectRatio: "1:1"},
		},
	})
	if err != nil {
		return "", err
	}

	if resp != nil {
		// 取第一個帶內嵌資料的部件，掃描順序即回應順序
		for _, cand := range resp.Candidates {
			for _, part := range cand.Content.Parts {
				if part.InlineData != nil && part.InlineData.Data != "" {
					return "data:image/png;base64," + part.InlineData.Data, nil
				}
			}
		}
	}

	common.LogInfo("配圖回應無圖片內容，使用佔位圖", zap.String("標題", recipeTitle))
	return PlaceholderURL(recipeTitle), nil
}

// PlaceholderURL 依標題生成確定性的佔位圖 URL
func PlaceholderURL(title string) string {
	return fmt.Sprintf(placeholderURLTemplate, url.QueryEscape(title))
}
