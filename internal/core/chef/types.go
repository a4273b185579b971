package chef

// DietaryMode 飲食模式，決定套用到所有候選食譜的營養約束
type DietaryMode string

// 飲食模式枚舉，新增模式時 CompileDietaryConstraint 必須同步加分支
const (
	DietaryStandard    DietaryMode = "standard"
	DietaryHighProtein DietaryMode = "high_protein"
	DietaryKeto        DietaryMode = "keto"
	DietaryUnder500Cal DietaryMode = "under_500_cal"
)

// EmotionalStyle 情緒風格，決定菜色的質地與氛圍約束
type EmotionalStyle string

const (
	StyleComfort   EmotionalStyle = "comfort"
	StyleLight     EmotionalStyle = "light"
	StyleEnergized EmotionalStyle = "energized"
	StyleCozy      EmotionalStyle = "cozy"
	StyleLazy      EmotionalStyle = "lazy"
	StyleImpress   EmotionalStyle = "impress"
)

// DefaultStyle 呼叫端未指定時的預設風格
const DefaultStyle = StyleComfort

// TasteProfile 個人口味記憶，由呼叫端提供與保存
type TasteProfile struct {
	LovedPatterns      []string `json:"loved_patterns"`
	DislikedPatterns   []string `json:"disliked_patterns"`
	SpiceLevel         string   `json:"spice_level"`
	TexturePreferences []string `json:"texture_preferences"`
	FlavorBias         []string `json:"flavor_bias"`
}

// IsEmpty 檢查口味記憶是否沒有任何內容
func (p *TasteProfile) IsEmpty() bool {
	return p == nil ||
		(len(p.LovedPatterns) == 0 &&
			len(p.DislikedPatterns) == 0 &&
			p.SpiceLevel == "" &&
			len(p.TexturePreferences) == 0 &&
			len(p.FlavorBias) == 0)
}

// NutritionFacts 營養資訊，總量與每份各出現一次
// 數值由生成服務提供，本層只要求存在、不驗證算術一致性
type NutritionFacts struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// RecipeIngredientLine 食譜中的一行食材
// IsMissing 標記呼叫端手上沒有的食材
type RecipeIngredientLine struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	IsMissing bool   `json:"isMissing"`
}

// RecipeCandidate 候選食譜
// ID 由本層按回應陣列位置指派（recipe-0 起），跨次呼叫不保證穩定
type RecipeCandidate struct {
	ID                  string                 `json:"id"`
	Title               string                 `json:"title"`
	Description         string                 `json:"description"`
	PrepTime            string                 `json:"prepTime"`
	Calories            float64                `json:"calories"`
	ServingsCount       int                    `json:"servingsCount"`
	NutritionSource     string                 `json:"nutritionSource"`
	IsEstimated         bool                   `json:"isEstimated"`
	NutritionTotal      NutritionFacts         `json:"nutritionTotal"`
	NutritionPerServing NutritionFacts         `json:"nutritionPerServing"`
	Ingredients         []RecipeIngredientLine `json:"ingredients"`
	Instructions        []string               `json:"instructions"`
}
