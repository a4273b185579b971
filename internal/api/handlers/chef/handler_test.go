package chef

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/queue"
	chefcore "github.com/Malkan-Shaheen/pure-chef/internal/core/chef"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/gemini"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	imagecore "github.com/Malkan-Shaheen/pure-chef/internal/core/image"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAI 測試用生成服務替身
type stubAI struct {
	handler func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error)
}

func (s *stubAI) ProcessRequest(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
	return s.handler(ctx, req)
}

func textAI(text string) *stubAI {
	return &stubAI{handler: func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
		return &gemini.GenerateContentResponse{
			Candidates: []gemini.Candidate{
				{Content: gemini.Content{Role: "model", Parts: []gemini.Part{gemini.TextPart(text)}}},
			},
		}, nil
	}}
}

func errorAI(err error) *stubAI {
	return &stubAI{handler: func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
		return nil, err
	}}
}

func handlerConfig() *config.Config {
	return &config.Config{
		Gemini: config.GeminiConfig{
			TextModel:   "gemini-2.5-flash",
			VisionModel: "gemini-2.5-flash",
			ImageModel:  "gemini-2.5-flash-image",
		},
		Queue: config.QueueConfig{Workers: 2, MaxSize: 16},
	}
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func testPNGDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestExtractHandler(t *testing.T) {
	cfg := handlerConfig()
	handler := NewIngredientHandler(
		chefcore.NewIngredientService(cfg, textAI("chicken, rice")),
		imagecore.NewService(cfg),
	)

	engine := gin.New()
	engine.POST("/extract", handler.Extract)

	rec := postJSON(t, engine, "/extract", gin.H{"image": testPNGDataURI(t)})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp extractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"chicken", "rice"}, resp.Ingredients)
}

func TestExtractHandlerBadPayload(t *testing.T) {
	cfg := handlerConfig()
	handler := NewIngredientHandler(
		chefcore.NewIngredientService(cfg, textAI("unused")),
		imagecore.NewService(cfg),
	)

	engine := gin.New()
	engine.POST("/extract", handler.Extract)

	// 缺 image 欄位
	rec := postJSON(t, engine, "/extract", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 不是合法圖片
	rec = postJSON(t, engine, "/extract", gin.H{"image": base64.StdEncoding.EncodeToString([]byte("not an image"))})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateHandler(t *testing.T) {
	payload := `[{
		"title": "Chicken Rice Bowl",
		"description": "Simple and filling.",
		"prepTime": "20 min",
		"calories": 520,
		"servingsCount": 2,
		"ingredients": [{"name": "chicken", "amount": "200 g", "isMissing": false}],
		"instructions": ["Cook the rice.", "Sear the chicken."],
		"nutritionTotal": {"calories": 1040, "protein_g": 80, "carbs_g": 110, "fat_g": 28},
		"nutritionPerServing": {"calories": 520, "protein_g": 40, "carbs_g": 55, "fat_g": 14}
	}]`
	cfg := handlerConfig()
	handler := NewRecipeHandler(chefcore.NewRecipeService(cfg, textAI(payload)))

	engine := gin.New()
	engine.POST("/generate", handler.Generate)

	rec := postJSON(t, engine, "/generate", gin.H{
		"ingredients":    []string{"chicken", "rice"},
		"dietaryMode":    "high_protein",
		"emotionalStyle": "comfort",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "recipe-0", resp.Recipes[0].ID)
	assert.Equal(t, "Chicken Rice Bowl", resp.Recipes[0].Title)
}

func TestGenerateHandlerEmptyResult(t *testing.T) {
	cfg := handlerConfig()
	handler := NewRecipeHandler(chefcore.NewRecipeService(cfg, textAI("[]")))

	engine := gin.New()
	engine.POST("/generate", handler.Generate)

	rec := postJSON(t, engine, "/generate", gin.H{"ingredients": []string{"rice"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recipes": []}`, rec.Body.String())
}

func TestGenerateHandlerTransportError(t *testing.T) {
	cfg := handlerConfig()
	handler := NewRecipeHandler(chefcore.NewRecipeService(cfg, errorAI(common.NewTransportError("upstream down", nil))))

	engine := gin.New()
	engine.POST("/generate", handler.Generate)

	rec := postJSON(t, engine, "/generate", gin.H{"ingredients": []string{"rice"}})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrCodeTransportError, resp.Code)
}

func TestGenerateHandlerGenerationError(t *testing.T) {
	cfg := handlerConfig()
	handler := NewRecipeHandler(chefcore.NewRecipeService(cfg, textAI("not json at all")))

	engine := gin.New()
	engine.POST("/generate", handler.Generate)

	rec := postJSON(t, engine, "/generate", gin.H{"ingredients": []string{"rice"}})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrCodeGenerationError, resp.Code)
}

func TestIllustrateHandlerFallback(t *testing.T) {
	cfg := handlerConfig()
	svc := chefcore.NewImageService(cfg, textAI("no image here"))
	handler := NewImageHandler(svc, nil)

	engine := gin.New()
	engine.POST("/illustrate", handler.Illustrate)

	rec := postJSON(t, engine, "/illustrate", gin.H{"title": "Miso Soup"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp illustrateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, chefcore.PlaceholderURL("Miso Soup"), resp.ImageURI)
}

func TestIllustrateBatchHandler(t *testing.T) {
	cfg := handlerConfig()
	svc := chefcore.NewImageService(cfg, textAI("no image"))
	manager := queue.NewManager(cfg, svc)
	defer manager.Close()
	handler := NewImageHandler(svc, manager)

	engine := gin.New()
	engine.POST("/batch", handler.IllustrateBatch)

	rec := postJSON(t, engine, "/batch", gin.H{"titles": []string{"Dish A", "Dish B"}})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp illustrateBatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Dish A", resp.Results[0].Title)
	assert.Equal(t, chefcore.PlaceholderURL("Dish A"), resp.Results[0].ImageURI)
	assert.Equal(t, chefcore.PlaceholderURL("Dish B"), resp.Results[1].ImageURI)
}

func TestIllustrateBatchHandlerValidation(t *testing.T) {
	cfg := handlerConfig()
	svc := chefcore.NewImageService(cfg, textAI("no image"))
	manager := queue.NewManager(cfg, svc)
	defer manager.Close()
	handler := NewImageHandler(svc, manager)

	engine := gin.New()
	engine.POST("/batch", handler.IllustrateBatch)

	// 空清單
	rec := postJSON(t, engine, "/batch", gin.H{"titles": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 空標題
	rec = postJSON(t, engine, "/batch", gin.H{"titles": []string{"ok", ""}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 超過上限
	titles := make([]string, maxBatchTitles+1)
	for i := range titles {
		titles[i] = "dish"
	}
	rec = postJSON(t, engine, "/batch", gin.H{"titles": titles})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIllustrateBatchHandlerSlowJobsStillOrdered(t *testing.T) {
	cfg := handlerConfig()
	slow := &stubAI{handler: func(ctx context.Context, req *ai.Request) (*gemini.GenerateContentResponse, error) {
		time.Sleep(10 * time.Millisecond)
		return &gemini.GenerateContentResponse{
			Candidates: []gemini.Candidate{
				{Content: gemini.Content{Role: "model", Parts: []gemini.Part{gemini.TextPart("no image")}}},
			},
		}, nil
	}}
	svc := chefcore.NewImageService(cfg, slow)
	manager := queue.NewManager(cfg, svc)
	defer manager.Close()
	handler := NewImageHandler(svc, manager)

	engine := gin.New()
	engine.POST("/batch", handler.IllustrateBatch)

	titles := []string{"A", "B", "C", "D"}
	rec := postJSON(t, engine, "/batch", gin.H{"titles": titles})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp illustrateBatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 4)
	for i, r := range resp.Results {
		assert.Equal(t, titles[i], r.Title)
	}
}
