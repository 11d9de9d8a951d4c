// Package handler exposes artisan profile and connection endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_backend/internal/feature/artisans/domain/entity"
	"artisan_backend/internal/feature/artisans/transport/http/dto"
	"artisan_backend/internal/feature/artisans/usecase"
	jwtmw "artisan_backend/internal/platform/jwt"
)

// ArtisansUsecase defines the operations the handler needs.
type ArtisansUsecase interface {
	FindByID(ctx context.Context, id string) (*entity.ArtisanProfile, error)
	List(ctx context.Context) ([]*entity.ArtisanProfile, error)
	UpdateProfile(ctx context.Context, requesterID string, profile *entity.ArtisanProfile) (*entity.ArtisanProfile, error)
	ToggleFollow(ctx context.Context, followerID, followedID string) (bool, error)
	Following(ctx context.Context, artisanID string) ([]string, error)
	Followers(ctx context.Context, artisanID string) ([]string, error)
	RecommendConnections(ctx context.Context, requesterID, query string) ([]*entity.ArtisanProfile, error)
}

// VisitRecorder feeds storefront visits into the seller's engagement
// metrics.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, artisanID string) error
}

// ArtisansHandler handles artisan HTTP requests.
type ArtisansHandler struct {
	artisans ArtisansUsecase
	visits   VisitRecorder
}

// NewArtisansHandler creates a new ArtisansHandler.
func NewArtisansHandler(artisans ArtisansUsecase, visits VisitRecorder) *ArtisansHandler {
	return &ArtisansHandler{artisans: artisans, visits: visits}
}

// List は全職人プロフィールの一覧をJSONで返します。
//
// エンドポイント例:
// GET /artisans
func (h *ArtisansHandler) List(c *gin.Context) {
	profiles, err := h.artisans.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list artisans"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// Get は指定IDのプロフィールをポートフォリオ込みで返します。
//
// エンドポイント例:
// GET /artisans/:id
func (h *ArtisansHandler) Get(c *gin.Context) {
	profile, err := h.artisans.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, usecase.ErrArtisanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "artisan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch artisan"})
		return
	}

	// Visiting someone else's storefront counts toward their engagement.
	// Best effort: a failed record never blocks the response.
	if viewerID := c.GetString(jwtmw.ContextArtisanID); viewerID != "" && viewerID != profile.ID {
		if err := h.visits.RecordVisit(c.Request.Context(), profile.ID); err != nil {
			slog.Warn("failed to record visit", "artisan_id", profile.ID, "error", err)
		}
	}
	c.JSON(http.StatusOK, profile)
}

// Update は本人のプロフィールをポートフォリオごと置き換えます。
// 所有者以外からの更新は403を返します。
func (h *ArtisansHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := &entity.ArtisanProfile{
		ID:           c.Param("id"),
		Name:         req.Name,
		Specialty:    req.Specialty,
		AvatarURL:    req.AvatarURL,
		Location:     req.Location,
		Experience:   req.Experience,
		Availability: req.Availability,
		Workplace:    req.Workplace,
		Phone:        req.Phone,
		Instagram:    req.Instagram,
	}
	for _, item := range req.Portfolio {
		profile.Portfolio = append(profile.Portfolio, entity.PortfolioItem{
			ID:          item.ID,
			Title:       item.Title,
			ImageURL:    item.ImageURL,
			Description: item.Description,
		})
	}

	requesterID := c.GetString(jwtmw.ContextArtisanID)
	updated, err := h.artisans.UpdateProfile(c.Request.Context(), requesterID, profile)
	switch {
	case errors.Is(err, usecase.ErrNotProfileOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrArtisanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ToggleFollow はフォロー状態を反転し、新しい状態を返します。
func (h *ArtisansHandler) ToggleFollow(c *gin.Context) {
	followerID := c.GetString(jwtmw.ContextArtisanID)
	following, err := h.artisans.ToggleFollow(c.Request.Context(), followerID, c.Param("id"))
	switch {
	case errors.Is(err, usecase.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrArtisanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle follow"})
		return
	}
	c.JSON(http.StatusOK, dto.ToggleFollowRes{Following: following})
}

// Connections はフォロー中とフォロワーのID一覧を返します。
func (h *ArtisansHandler) Connections(c *gin.Context) {
	artisanID := c.GetString(jwtmw.ContextArtisanID)
	ctx := c.Request.Context()

	following, err := h.artisans.Following(ctx, artisanID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list connections"})
		return
	}
	followers, err := h.artisans.Followers(ctx, artisanID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list connections"})
		return
	}
	c.JSON(http.StatusOK, dto.ConnectionsRes{Following: following, Followers: followers})
}

// Recommend はコラボ相手の候補を提案します。AIゲートウェイが利用できない
// 場合は単純なフィルタにフォールバックします。
func (h *ArtisansHandler) Recommend(c *gin.Context) {
	requesterID := c.GetString(jwtmw.ContextArtisanID)
	matches, err := h.artisans.RecommendConnections(c.Request.Context(), requesterID, c.Query("q"))
	if errors.Is(err, usecase.ErrArtisanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build recommendations"})
		return
	}
	c.JSON(http.StatusOK, matches)
}
