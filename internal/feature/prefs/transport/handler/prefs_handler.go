// Package handler exposes preference endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_backend/internal/feature/prefs/usecase"
	jwtmw "artisan_backend/internal/platform/jwt"
)

// PrefsUsecase defines the operations the handler needs.
type PrefsUsecase interface {
	LastView(ctx context.Context, artisanID string) (string, error)
	SetLastView(ctx context.Context, artisanID, view string) error
	RecentlyViewed(ctx context.Context, artisanID string) ([]string, error)
}

// PrefsHandler handles preference HTTP requests.
type PrefsHandler struct {
	prefs PrefsUsecase
}

// NewPrefsHandler creates a new PrefsHandler.
func NewPrefsHandler(prefs PrefsUsecase) *PrefsHandler {
	return &PrefsHandler{prefs: prefs}
}

type setLastViewReq struct {
	View string `json:"view" binding:"required"`
}

// GetLastView returns the caller's last opened view, or 204 when none is
// stored.
func (h *PrefsHandler) GetLastView(c *gin.Context) {
	view, err := h.prefs.LastView(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID))
	if errors.Is(err, usecase.ErrNoLastView) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load last view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view})
}

// SetLastView stores the caller's current view.
func (h *PrefsHandler) SetLastView(c *gin.Context) {
	var req setLastViewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.prefs.SetLastView(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID), req.View); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store last view"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RecentlyViewed returns the caller's browsing history, most recent
// first.
func (h *PrefsHandler) RecentlyViewed(c *gin.Context) {
	ids, err := h.prefs.RecentlyViewed(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recently viewed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_ids": ids})
}
