package gemini

import (
	"encoding/base64"
	"strings"
)

// GenerateContentRequest 生成請求
// contents 為對話內容，generationConfig 控制輸出形態（JSON 模式、schema、圖片參數）
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content 一則訊息內容
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part 內容片段，文字或內嵌二進位資料擇一
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData 內嵌二進位資料（base64 編碼）
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// GenerationConfig 輸出形態設定
type GenerationConfig struct {
	ResponseMIMEType   string       `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema      `json:"responseSchema,omitempty"`
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	MaxOutputTokens    int          `json:"maxOutputTokens,omitempty"`
	Temperature        *float64     `json:"temperature,omitempty"`
	ImageConfig        *ImageConfig `json:"imageConfig,omitempty"`
}

// ImageConfig 圖片輸出參數
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// Schema 結構化輸出 schema（OpenAPI 子集，型別用大寫字串表示）
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Schema 型別常量
const (
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeInteger = "INTEGER"
	TypeBoolean = "BOOLEAN"
)

// GenerateContentResponse 生成響應
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate 候選輸出
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// Text 串接第一個候選輸出的所有文字片段
func (r *GenerateContentResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}

// TextPart 建立文字片段
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlineDataPart 建立內嵌資料片段，原始位元組在此處做 base64 編碼
func InlineDataPart(mimeType string, data []byte) Part {
	return Part{
		InlineData: &InlineData{
			MIMEType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(data),
		},
	}
}

// NewUserContent 建立使用者角色的內容
func NewUserContent(parts ...Part) Content {
	return Content{
		Role:  "user",
		Parts: parts,
	}
}
