package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

// jpegQuality 重新編碼品質，餐桌照片用 85 已綽綽有餘
const jpegQuality = 85

// Service 圖片前處理服務，負責把呼叫端上傳的照片整理成視覺模型可用的格式
type Service struct {
	config *config.Config
}

// NewService 創建圖片前處理服務
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// DecodeDataURI 解析 data URI，回傳原始位元組與宣告的 MIME 類型
// 也接受裸 base64 字串，此時 MIME 由解碼後內容推斷
func (s *Service) DecodeDataURI(input string) ([]byte, string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, "", common.NewValidationError("image payload is empty")
	}

	declaredMIME := ""
	payload := input
	if strings.HasPrefix(input, "data:") {
		comma := strings.Index(input, ",")
		if comma < 0 {
			return nil, "", common.NewValidationError("malformed data URI")
		}
		header := input[len("data:"):comma]
		payload = input[comma+1:]

		if !strings.HasSuffix(header, ";base64") {
			return nil, "", common.NewValidationError("data URI must be base64 encoded")
		}
		declaredMIME = strings.TrimSuffix(header, ";base64")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", common.NewValidationError("invalid base64 image data")
	}

	if s.config.Image.MaxSizeBytes > 0 && int64(len(data)) > s.config.Image.MaxSizeBytes {
		common.LogWarn("圖片超過大小限制",
			zap.Int("大小", len(data)),
			zap.Int64("上限", s.config.Image.MaxSizeBytes),
		)
		return nil, "", common.ErrInvalidImageSize
	}

	return data, declaredMIME, nil
}

// Normalize 將上傳照片標準化為 JPEG
// 支援 JPEG/PNG/GIF/WebP 輸入；無法解碼視為格式錯誤
func (s *Service) Normalize(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", common.ErrInvalidImageFormat
	}

	// 已經是 JPEG 就不重編碼，保留原始品質
	if format == "jpeg" {
		return data, "image/jpeg", nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to re-encode image: %w", err)
	}

	common.LogDebug("圖片已標準化",
		zap.String("來源格式", format),
		zap.Int("原始大小", len(data)),
		zap.Int("輸出大小", buf.Len()),
	)
	return buf.Bytes(), "image/jpeg", nil
}

// Prepare 一條龍：解析 data URI、檢查大小並標準化為 JPEG
func (s *Service) Prepare(input string) ([]byte, string, error) {
	data, _, err := s.DecodeDataURI(input)
	if err != nil {
		return nil, "", err
	}
	return s.Normalize(data)
}
