// Package handler exposes the seller dashboard endpoint.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_backend/internal/feature/dashboard/domain/entity"
	jwtmw "artisan_backend/internal/platform/jwt"
)

// DashboardUsecase defines the operations the handler needs.
type DashboardUsecase interface {
	Get(ctx context.Context, artisanID string) (*entity.Dashboard, error)
}

// DashboardHandler handles dashboard HTTP requests.
type DashboardHandler struct {
	dashboard DashboardUsecase
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get returns the caller's aggregated sales and engagement metrics.
func (h *DashboardHandler) Get(c *gin.Context) {
	dashboard, err := h.dashboard.Get(c.Request.Context(), c.GetString(jwtmw.ContextArtisanID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
