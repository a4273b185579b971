package chef

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/gemini"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInline 回傳帶內嵌圖片資料的回應
func stubInline(data string) *stubAIService {
	return &stubAIService{
		handler: func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
			return &gemini.GenerateContentResponse{
				Candidates: []gemini.Candidate{
					{Content: gemini.Content{Role: "model", Parts: []gemini.Part{
						{Text: "Here is your dish."},
						{InlineData: &gemini.InlineData{MIMEType: "image/png", Data: data}},
					}}},
				},
			}, nil
		},
	}
}

func TestIllustrateInlineImage(t *testing.T) {
	svc := NewImageService(testConfig(), stubInline("QUJD"))

	uri, err := svc.Illustrate(context.Background(), "Pan-Seared Chicken")

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QUJD", uri)
}

func TestIllustrateRequestShape(t *testing.T) {
	stub := stubInline("QUJD")
	svc := NewImageService(testConfig(), stub)

	_, err := svc.Illustrate(context.Background(), "Miso Soup")
	require.NoError(t, err)

	req := stub.lastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "gemini-2.5-flash-image", req.Model)
	assert.Contains(t, req.Prompt, "Miso Soup")
	require.NotNil(t, req.Config)
	assert.Contains(t, req.Config.ResponseModalities, "IMAGE")
	require.NotNil(t, req.Config.ImageConfig)
	assert.Equal(t, "1:1", req.Config.ImageConfig.AspectRatio)
}

func TestIllustratePlaceholderFallback(t *testing.T) {
	// 回應只有文字，沒有內嵌圖片
	svc := NewImageService(testConfig(), stubText("sorry, no image"))

	uri, err := svc.Illustrate(context.Background(), "Lemon Herb Pasta")

	require.NoError(t, err)
	assert.Equal(t, PlaceholderURL("Lemon Herb Pasta"), uri)
	// 標題經過 URL 編碼後出現在佔位圖網址中
	assert.Contains(t, uri, "Lemon+Herb+Pasta")
}

func TestPlaceholderURLDeterministic(t *testing.T) {
	first := PlaceholderURL("Spicy Tofu & Rice")
	second := PlaceholderURL("Spicy Tofu & Rice")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, PlaceholderURL("Another Dish"))
	// 特殊字元必須被編碼
	assert.NotContains(t, first, "&")
	assert.NotContains(t, first, " ")
}

func TestIllustrateTransportError(t *testing.T) {
	svc := NewImageService(testConfig(), stubError(common.NewTransportError("dns failure", nil)))

	uri, err := svc.Illustrate(context.Background(), "Any Dish")

	// 傳輸層錯誤不能被佔位圖吞掉
	assert.Equal(t, "", uri)
	require.Error(t, err)
	assert.True(t, common.IsTransportError(err))
}

func TestIllustrateEmptyTitle(t *testing.T) {
	svc := NewImageService(testConfig(), stubText("unused"))

	_, err := svc.Illustrate(context.Background(), "")

	require.Error(t, err)
}

func TestIllustrateConcurrent(t *testing.T) {
	// 並發呼叫彼此獨立，各自拿到自己標題的結果
	stub := &stubAIService{
		handler: func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
			return textOnlyResponse("no image"), nil
		},
	}
	svc := NewImageService(testConfig(), stub)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uri, err := svc.Illustrate(context.Background(), fmt.Sprintf("Dish %d", i))
			assert.NoError(t, err)
			results[i] = uri
		}(i)
	}
	wg.Wait()

	for i, uri := range results {
		assert.Equal(t, PlaceholderURL(fmt.Sprintf("Dish %d", i)), uri)
	}
}
