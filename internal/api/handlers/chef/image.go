package chef

import (
	"net/http"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/queue"
	chefcore "github.com/Malkan-Shaheen/pure-chef/internal/core/chef"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// maxBatchTitles 單一批次的標題數量上限
const maxBatchTitles = 10

// ImageHandler 食譜配圖端點
type ImageHandler struct {
	imageService *chefcore.ImageService
	queue        *queue.Manager
}

// NewImageHandler 創建食譜配圖端點
func NewImageHandler(imageService *chefcore.ImageService, queueManager *queue.Manager) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		queue:        queueManager,
	}
}

// illustrateRequest 單張配圖請求體
type illustrateRequest struct {
	Title string `json:"title" binding:"required"`
}

// illustrateResponse 單張配圖響應體
type illustrateResponse struct {
	ImageURI string `json:"imageUri"`
}

// Illustrate 為單一食譜標題生成配圖
// POST /api/v1/chef/recipes/illustrate
func (h *ImageHandler) Illustrate(c *gin.Context) {
	var req illustrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式",
		})
		return
	}

	uri, err := h.imageService.Illustrate(c.Request.Context(), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, illustrateResponse{ImageURI: uri})
}

// illustrateBatchRequest 批次配圖請求體
type illustrateBatchRequest struct {
	Titles []string `json:"titles" binding:"required"`
}

// illustrateBatchResponse 批次配圖響應體
type illustrateBatchResponse struct {
	Results []queue.IllustrationResult `json:"results"`
}

// IllustrateBatch 為一批食譜標題生成配圖
// 單項失敗不影響其他項，結果順序與輸入一致
// POST /api/v1/chef/recipes/illustrate/batch
func (h *ImageHandler) IllustrateBatch(c *gin.Context) {
	var req illustrateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式",
		})
		return
	}

	if len(req.Titles) == 0 || len(req.Titles) > maxBatchTitles {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "標題數量必須介於 1 到 10 之間",
		})
		return
	}
	for _, title := range req.Titles {
		if title == "" {
			c.JSON(http.StatusBadRequest, common.ErrorResponse{
				Code:    common.ErrCodeInvalidRequest,
				Message: "標題不可為空",
			})
			return
		}
	}

	results := h.queue.IllustrateBatch(c.Request.Context(), req.Titles)
	c.JSON(http.StatusOK, illustrateBatchResponse{Results: results})
}
