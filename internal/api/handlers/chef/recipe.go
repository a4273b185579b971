package chef

import (
	"net/http"

	chefcore "github.com/Malkan-Shaheen/pure-chef/internal/core/chef"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// RecipeHandler 食譜生成端點
type RecipeHandler struct {
	recipeService *chefcore.RecipeService
}

// NewRecipeHandler 創建食譜生成端點
func NewRecipeHandler(recipeService *chefcore.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// generateRequest 食譜生成請求體
type generateRequest struct {
	Ingredients    []string               `json:"ingredients" binding:"required"`
	DietaryMode    string                 `json:"dietaryMode"`
	EmotionalStyle string                 `json:"emotionalStyle"`
	TasteProfile   *chefcore.TasteProfile `json:"tasteProfile"`
}

// generateResponse 食譜生成響應體
type generateResponse struct {
	Recipes []chefcore.RecipeCandidate `json:"recipes"`
}

// Generate 依食材與約束生成候選食譜
// POST /api/v1/chef/recipes/generate
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式",
		})
		return
	}

	mode := chefcore.DietaryMode(req.DietaryMode)
	if req.DietaryMode == "" {
		mode = chefcore.DietaryStandard
	}
	style := chefcore.EmotionalStyle(req.EmotionalStyle)
	if req.EmotionalStyle == "" {
		style = chefcore.DefaultStyle
	}

	candidates, err := h.recipeService.Generate(c.Request.Context(), req.Ingredients, mode, style, req.TasteProfile)
	if err != nil {
		respondError(c, err)
		return
	}

	if candidates == nil {
		candidates = []chefcore.RecipeCandidate{}
	}
	c.JSON(http.StatusOK, generateResponse{Recipes: candidates})
}
