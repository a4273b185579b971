package chef

import (
	"context"
	"fmt"
	"strings"

	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/gemini"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// nutritionSchema 四項營養數值，總量與每份共用同一結構
var nutritionSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"calories":  {Type: gemini.TypeNumber},
		"protein_g": {Type: gemini.TypeNumber},
		"carbs_g":   {Type: gemini.TypeNumber},
		"fat_g":     {Type: gemini.TypeNumber},
	},
	Required: []string{"calories", "protein_g", "carbs_g", "fat_g"},
}

// recipeSchema 候選食譜陣列的回應結構，隨請求傳給生成服務做結構化輸出
var recipeSchema = &gemini.Schema{
	Type: gemini.TypeArray,
	Items: &gemini.Schema{
		Type: gemini.TypeObject,
		Properties: map[string]*gemini.Schema{
			"title":           {Type: gemini.TypeString},
			"description":     {Type: gemini.TypeString},
			"prepTime":        {Type: gemini.TypeString, Description: "Preparation time, e.g. \"25 min\""},
			"calories":        {Type: gemini.TypeNumber},
			"servingsCount":   {Type: gemini.TypeInteger},
			"nutritionSource": {Type: gemini.TypeString},
			"isEstimated":     {Type: gemini.TypeBoolean},
			"ingredients": {
				Type: gemini.TypeArray,
				Items: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"name":      {Type: gemini.TypeString},
						"amount":    {Type: gemini.TypeString},
						"isMissing": {Type: gemini.TypeBoolean, Description: "true only for ingredients the user does not have"},
					},
					Required: []string{"name", "amount", "isMissing"},
				},
			},
			"instructions":        {Type: gemini.TypeArray, Items: &gemini.Schema{Type: gemini.TypeString}},
			"nutritionTotal":      nutritionSchema,
			"nutritionPerServing": nutritionSchema,
		},
		Required: []string{
			"title", "description", "prepTime", "calories", "servingsCount",
			"ingredients", "instructions", "nutritionTotal", "nutritionPerServing",
		},
	},
}

// RecipeService 食譜生成服務，依約束生成三道候選食譜
type RecipeService struct {
	config    *config.Config
	aiService AIService
}

// NewRecipeService 創建食譜生成服務
func NewRecipeService(cfg *config.Config, aiService AIService) *RecipeService {
	return &RecipeService{
		config:    cfg,
		aiService: aiService,
	}
}

// Generate 依食材與約束生成候選食譜
// 回傳的 ID 按陣列位置指派（recipe-0 起），同輸入重新生成不保證得到相同食譜
func (s *RecipeService) Generate(ctx context.Context, ingredients []string, mode DietaryMode, style EmotionalStyle, profile *TasteProfile) ([]RecipeCandidate, error) {
	if len(ingredients) == 0 {
		return nil, common.NewValidationError("ingredient list is empty")
	}

	if CompileStyleConstraint(style) == "" {
		style = DefaultStyle
	}

	prompt := buildRecipePrompt(ingredients, mode, style, profile)

	resp, err := s.aiService.ProcessRequest(ctx, &ai.Request{
		Model:  s.config.Gemini.TextModel,
		Prompt: prompt,
		Config: &gemini.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   recipeSchema,
			MaxOutputTokens:  s.config.Gemini.MaxOutputTokens,
		},
	})
	if err != nil {
		return nil, err
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	candidates, err := parseRecipeCandidates(text)
	if err != nil {
		return nil, err
	}

	common.LogInfo("食譜生成完成",
		zap.Int("候選數量", len(candidates)),
		zap.String("飲食模式", string(mode)),
		zap.String("情緒風格", string(style)),
	)
	return candidates, nil
}

// buildRecipePrompt 組裝食譜生成提示詞
func buildRecipePrompt(ingredients []string, mode DietaryMode, style EmotionalStyle, profile *TasteProfile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a creative home chef. The user has these ingredients on hand: %s.\n", strings.Join(ingredients, ", "))
	sb.WriteString("Assume basic pantry staples are also available: oil, salt, pepper, and water.\n\n")

	sb.WriteString("Create exactly 3 recipes following this template:\n")
	sb.WriteString("Recipe 1 (full pantry): uses only the listed ingredients and staples; every ingredient line has isMissing set to false.\n")
	sb.WriteString("Recipe 2 (the gap): a near-miss recipe that needs 1-2 sensible extra ingredients; mark exactly those extras with isMissing set to true.\n")
	sb.WriteString("Recipe 3 (creative): the most inventive dish that still uses as many of the listed ingredients as possible.\n\n")

	fmt.Fprintf(&sb, "Dietary constraint: %s\n", CompileDietaryConstraint(mode))
	fmt.Fprintf(&sb, "Mood: %s\n", CompileStyleConstraint(style))
	if block := CompilePersonalizationBlock(profile); block != "" {
		sb.WriteString("\n")
		sb.WriteString(block)
	}

	sb.WriteString("\nRules:\n")
	sb.WriteString("1. Respond with a single JSON array matching the response schema. No prose, no markdown fences.\n")
	sb.WriteString("2. Give every recipe a title, a short description, prepTime, calories, and servingsCount.\n")
	sb.WriteString("3. Fill in nutritionTotal for the whole dish and nutritionPerServing for one serving, both with calories, protein_g, carbs_g, and fat_g.\n")
	sb.WriteString("4. List ingredients with realistic amounts and number the instructions as ordered steps.\n")

	return sb.String()
}

// parseRecipeCandidates 解析生成回應並指派候選識別碼
// 空陣列是合法結果；格式不合或候選缺標題視為生成失敗
func parseRecipeCandidates(text string) ([]RecipeCandidate, error) {
	content := common.ExtractJSONArray(common.StripCodeFence(text))

	var candidates []RecipeCandidate
	if err := common.ParseJSON(content, &candidates); err != nil {
		return nil, common.NewGenerationError("failed to parse recipe response", err)
	}

	for i := range candidates {
		if strings.TrimSpace(candidates[i].Title) == "" {
			return nil, common.NewGenerationError(fmt.Sprintf("recipe candidate %d has no title", i), nil)
		}
		candidates[i].ID = fmt.Sprintf("recipe-%d", i)
	}

	return candidates, nil
}
