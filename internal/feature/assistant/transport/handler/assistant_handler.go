// Package handler provides HTTP handlers for the assistant feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	artisanentity "artisan_backend/internal/feature/artisans/domain/entity"
	"artisan_backend/internal/feature/assistant/transport/http/dto"
	"artisan_backend/internal/feature/assistant/usecase"
	jwtmw "artisan_backend/internal/platform/jwt"
)

// AssistantUsecase defines the AI gateway operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AssistantUsecase interface {
	GenerateDescription(ctx context.Context, req usecase.DescriptionRequest) (string, error)
	BusinessSuggestions(ctx context.Context, name, specialty string) ([]string, error)
}

// ProfileReader resolves the requesting artisan's profile for personalized
// suggestions.
type ProfileReader interface {
	FindByID(ctx context.Context, id string) (*artisanentity.ArtisanProfile, error)
}

// AssistantHandler serves the pure-AI endpoints (description generation and
// business suggestions). Unlike search and connection recommendations, these
// have no non-AI fallback, so gateway failures surface as 502.
type AssistantHandler struct {
	assistant AssistantUsecase
	profiles  ProfileReader
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistant AssistantUsecase, profiles ProfileReader) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, profiles: profiles}
}

// GenerateDescription handles POST /assistant/description.
func (h *AssistantHandler) GenerateDescription(c *gin.Context) {
	var req dto.DescriptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("description request validation failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	text, err := h.assistant.GenerateDescription(c.Request.Context(), usecase.DescriptionRequest{
		ImageURL:  req.ImageURL,
		Keywords:  req.Keywords,
		CraftType: req.CraftType,
	})
	if err != nil {
		slog.Error("description generation failed", "error", err, "image_url", req.ImageURL)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate product description"})
		return
	}
	c.JSON(http.StatusOK, dto.DescriptionRes{Description: text})
}

// BusinessSuggestions handles GET /assistant/suggestions for the
// authenticated artisan.
func (h *AssistantHandler) BusinessSuggestions(c *gin.Context) {
	artisanID := c.GetString(jwtmw.ContextArtisanID)

	profile, err := h.profiles.FindByID(c.Request.Context(), artisanID)
	if err != nil {
		slog.Warn("suggestions requested for unknown profile", "artisan_id", artisanID, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	suggestions, err := h.assistant.BusinessSuggestions(c.Request.Context(), profile.Name, profile.Specialty)
	if err != nil {
		slog.Error("suggestion generation failed", "error", err, "artisan_id", artisanID)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate suggestions"})
		return
	}
	c.JSON(http.StatusOK, dto.SuggestionsRes{Suggestions: suggestions})
}
