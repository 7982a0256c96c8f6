package handlers

import (
	"net/http"

	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ArtisansHandler struct {
	service *services.ArtisanService
}

func NewArtisansHandler(service *services.ArtisanService) *ArtisansHandler {
	return &ArtisansHandler{service: service}
}

// ListArtisans godoc
// @Summary     Browse public artisans
// @Tags        artisans
// @Produce     json
// @Param       specialization_id query int false "Specialization"
// @Param       page              query int false "Page (1-indexed)"
// @Param       limit             query int false "Page size (max 100)"
// @Success     200 {object} models.Page[models.ArtisanSummary]
// @Failure     422 {object} models.ErrorResponse
// @Router      /artisans [get]
func (h *ArtisansHandler) ListArtisans(c *gin.Context) {
	var filter models.ArtisanFilter
	if !bindQuery(c, &filter) {
		return
	}

	page, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetArtisan godoc
// @Summary     Get an artisan's public profile
// @Description Hidden profiles are visible only to their owner.
// @Tags        artisans
// @Produce     json
// @Param       artisan_id path string true "Artisan user ID (UUID)"
// @Success     200 {object} models.ArtisanPublicProfile
// @Failure     404 {object} models.ErrorResponse
// @Router      /artisans/{artisan_id} [get]
func (h *ArtisansHandler) GetArtisan(c *gin.Context) {
	artisanID, ok := uuidParam(c, "artisan_id")
	if !ok {
		return
	}

	var viewer *uuid.UUID
	if userID, ok := middleware.UserID(c); ok {
		viewer = &userID
	}

	profile, err := h.service.GetPublicProfile(c.Request.Context(), artisanID, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetMyProfile godoc
// @Summary     Get the caller's business profile
// @Tags        artisans
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ArtisanProfile
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /artisans/me/profile [get]
func (h *ArtisansHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.service.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertMyProfile godoc
// @Summary     Create or update the caller's business profile
// @Tags        artisans
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpsertArtisanProfileRequest true "Profile"
// @Success     200 {object} models.ArtisanProfile
// @Failure     403 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /artisans/me/profile [put]
func (h *ArtisansHandler) UpsertMyProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.UpsertArtisanProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.UpsertProfile(c.Request.Context(), userID, middleware.Role(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SetVisibility godoc
// @Summary     Publish or hide the caller's profile
// @Tags        artisans
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.VisibilityRequest true "Visibility"
// @Success     200 {object} models.ArtisanProfile
// @Failure     404 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /artisans/me/profile/visibility [patch]
func (h *ArtisansHandler) SetVisibility(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.VisibilityRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.SetVisibility(c.Request.Context(), userID, *req.IsPublic)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AddPortfolioImage godoc
// @Summary     Add a portfolio image
// @Tags        artisans
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "JPEG, PNG or WebP up to 5 MiB"
// @Success     201 {object} models.PortfolioImage
// @Failure     404 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /artisans/me/portfolio [post]
func (h *ArtisansHandler) AddPortfolioImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limitBody(c, models.PortfolioImagePolicy)
	upload, err := readUpload(c, "image", models.PortfolioImagePolicy, true)
	if err != nil {
		respondError(c, err)
		return
	}

	img, err := h.service.AddPortfolioImage(c.Request.Context(), userID, upload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// DeletePortfolioImage godoc
// @Summary     Remove a portfolio image
// @Description A public profile must keep more than the minimum number of images.
// @Tags        artisans
// @Security    Bearer
// @Param       image_id path string true "Portfolio image ID (UUID)"
// @Success     204
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /artisans/me/portfolio/{image_id} [delete]
func (h *ArtisansHandler) DeletePortfolioImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	imageID, ok := uuidParam(c, "image_id")
	if !ok {
		return
	}

	if err := h.service.DeletePortfolioImage(c.Request.Context(), userID, imageID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
