package chef

import (
	"context"
	"strings"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// 食材辨識提示詞：只要食材本身，不要容器、品牌與多餘形容詞
const ingredientExtractionPrompt = `Look at this photo and list every individual food item you can see.
Respond with a single flat comma-separated list and nothing else.
Name only the food items themselves: no containers, no brand names, no packaging, and no adjectives that are not needed to identify the item.
If you see no food at all, respond with an empty line.`

// IngredientService 食材辨識服務，從照片抽取平面食材清單
type IngredientService struct {
	config    *config.Config
	aiService AIService
}

// NewIngredientService 創建食材辨識服務
func NewIngredientService(cfg *config.Config, aiService AIService) *IngredientService {
	return &IngredientService{
		config:    cfg,
		aiService: aiService,
	}
}

// Extract 從照片抽取食材名稱清單
// 全有或全無：任一環節失敗就回傳錯誤，不回傳部分結果
// 相同食材出現多次時照實保留，不去重
func (s *IngredientService) Extract(ctx context.Context, imageData []byte, mimeType string) ([]string, error) {
	if len(imageData) == 0 {
		return nil, common.NewValidationError("image data is empty")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	resp, err := s.aiService.ProcessRequest(ctx, &ai.Request{
		Model:     s.config.Gemini.VisionModel,
		Prompt:    ingredientExtractionPrompt,
		ImageData: imageData,
		ImageMIME: mimeType,
	})
	if err != nil {
		return nil, err
	}

	text, err := responseText(resp)
	if err != nil {
		// 模型對無食物照片可能回傳空白，視為生成失敗由呼叫端決定重試
		return nil, err
	}

	// 逗號切分，去除空白，丟棄空片段
	segments := strings.Split(text, ",")
	names := make([]string, 0, len(segments))
	for _, seg := range segments {
		if name := strings.TrimSpace(seg); name != "" {
			names = append(names, name)
		}
	}

	common.LogInfo("食材辨識完成",
		zap.Int("食材數量", len(names)),
		zap.Int("圖片大小", len(imageData)),
	)
	return names, nil
}
