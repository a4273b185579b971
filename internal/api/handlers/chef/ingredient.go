package chef

import (
	"net/http"

	chefcore "github.com/Malkan-Shaheen/pure-chef/internal/core/chef"
	imagecore "github.com/Malkan-Shaheen/pure-chef/internal/core/image"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// IngredientHandler 食材辨識端點
type IngredientHandler struct {
	ingredientService *chefcore.IngredientService
	imageService      *imagecore.Service
}

// NewIngredientHandler 創建食材辨識端點
func NewIngredientHandler(ingredientService *chefcore.IngredientService, imageService *imagecore.Service) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		imageService:      imageService,
	}
}

// extractRequest 食材辨識請求體
type extractRequest struct {
	Image string `json:"image" binding:"required"` // data URI 或裸 base64
}

// extractResponse 食材辨識響應體
type extractResponse struct {
	Ingredients []string `json:"ingredients"`
}

// Extract 從照片辨識食材
// POST /api/v1/chef/ingredients/extract
func (h *IngredientHandler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式",
		})
		return
	}

	data, mimeType, err := h.imageService.Prepare(req.Image)
	if err != nil {
		respondError(c, err)
		return
	}

	names, err := h.ingredientService.Extract(c.Request.Context(), data, mimeType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, extractResponse{Ingredients: names})
}
