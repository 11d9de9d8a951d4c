// Package dto defines data transfer objects for the assistant feature's HTTP transport layer.
package dto

// DescriptionReq represents the request body for /assistant/description.
type DescriptionReq struct {
	ImageURL  string `json:"image_url" binding:"required,url"`
	Keywords  string `json:"keywords" binding:"required"`
	CraftType string `json:"craft_type" binding:"required"`
}

// DescriptionRes carries the generated listing text.
type DescriptionRes struct {
	Description string `json:"description"`
}

// SuggestionsRes carries the generated business suggestions.
type SuggestionsRes struct {
	Suggestions []string `json:"suggestions"`
}
