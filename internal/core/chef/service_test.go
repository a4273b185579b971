package chef

import (
	"context"
	"sync"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/gemini"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
)

// stubAIService 測試用生成服務替身，記錄收到的請求
type stubAIService struct {
	mu       sync.Mutex
	requests []*ai.Request
	handler  func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error)
}

func (s *stubAIService) ProcessRequest(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	return s.handler(ctx, req)
}

func (s *stubAIService) lastRequest() *ai.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// stubText 固定回傳一段文字
func stubText(text string) *stubAIService {
	return &stubAIService{
		handler: func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
			return textOnlyResponse(text), nil
		},
	}
}

// stubError 固定回傳錯誤
func stubError(err error) *stubAIService {
	return &stubAIService{
		handler: func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
			return nil, err
		},
	}
}

func textOnlyResponse(text string) *gemini.GenerateContentResponse {
	return &gemini.GenerateContentResponse{
		Candidates: []gemini.Candidate{
			{Content: gemini.Content{Role: "model", Parts: []gemini.Part{gemini.TextPart(text)}}},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Gemini: config.GeminiConfig{
			APIKey:          "test-key",
			TextModel:       "gemini-2.5-flash",
			VisionModel:     "gemini-2.5-flash",
			ImageModel:      "gemini-2.5-flash-image",
			MaxOutputTokens: 4096,
			Timeout:         10 * time.Second,
		},
	}
}
