package chef

import (
	"fmt"
	"strings"
)

// CompileDietaryConstraint 將飲食模式編譯為提示詞約束句
// 未知模式一律回退到均衡飲食，不報錯
func CompileDietaryConstraint(mode DietaryMode) string {
	switch mode {
	case DietaryStandard:
		return "Keep the recipes suitable for everyday eating, with no special macro targets."
	case DietaryHighProtein:
		return "Every recipe must be high in protein, with at least 30 grams of protein per serving."
	case DietaryKeto:
		return "Every recipe must be keto-friendly: under 15 grams of net carbs per serving, moderate protein, high fat."
	case DietaryUnder500Cal:
		return "Every recipe must come in under 500 calories per serving."
	default:
		return "Keep the recipes balanced in calories and macronutrients."
	}
}

// CompileStyleConstraint 將情緒風格編譯為提示詞約束句
// 非法風格值回傳空字串，由呼叫端決定是否先套用預設值
func CompileStyleConstraint(style EmotionalStyle) string {
	switch style {
	case StyleComfort:
		return "Lean into comforting, familiar flavors: warm, saucy, gently seasoned dishes that feel like home."
	case StyleLight:
		return "Keep everything light and fresh, with crisp textures and bright acidity; nothing heavy or greasy."
	case StyleEnergized:
		return "Build energizing plates around lean protein, complex carbs, and vibrant vegetables."
	case StyleCozy:
		return "Go cozy: slow, warming dishes with soft textures and mellow, rounded spices."
	case StyleLazy:
		return "Keep effort minimal: few steps, little chopping, and one pot or pan wherever possible."
	case StyleImpress:
		return "Make it impressive: refined flavor pairings, restaurant-style plating cues, and a finishing touch worth mentioning."
	}
	return ""
}

// CompilePersonalizationBlock 將口味記憶編譯為提示詞區塊
// 沒有提供口味記憶時回傳空字串，提示詞中不出現該區塊
func CompilePersonalizationBlock(profile *TasteProfile) string {
	if profile == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Personal taste profile:\n")

	if len(profile.LovedPatterns) > 0 {
		fmt.Fprintf(&sb, "- Loved patterns: %s\n", strings.Join(profile.LovedPatterns, ", "))
	}
	if len(profile.DislikedPatterns) > 0 {
		fmt.Fprintf(&sb, "- Disliked patterns (avoid these): %s\n", strings.Join(profile.DislikedPatterns, ", "))
	}
	if profile.SpiceLevel != "" {
		fmt.Fprintf(&sb, "- Preferred spice level: %s\n", profile.SpiceLevel)
	}
	if len(profile.TexturePreferences) > 0 {
		fmt.Fprintf(&sb, "- Texture preferences: %s\n", strings.Join(profile.TexturePreferences, ", "))
	}
	if len(profile.FlavorBias) > 0 {
		fmt.Fprintf(&sb, "- Flavor bias: %s\n", strings.Join(profile.FlavorBias, ", "))
	}

	sb.WriteString("Bias the creative recipe toward the loved patterns above.\n")
	return sb.String()
}
