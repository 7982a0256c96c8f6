package handlers

import (
	"net/http"

	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ReviewsHandler struct {
	service *services.ReviewService
}

func NewReviewsHandler(service *services.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: service}
}

// CreateReview godoc
// @Summary     Review the other party of a completed project
// @Tags        reviews
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateReviewRequest true "Review"
// @Success     201 {object} models.Review
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /projects/{project_id}/reviews [post]
func (h *ReviewsHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.service.Create(c.Request.Context(), projectID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListForArtisan godoc
// @Summary     List reviews an artisan received
// @Tags        reviews
// @Produce     json
// @Param       artisan_id path  string true  "Artisan user ID (UUID)"
// @Param       page       query int    false "Page (1-indexed)"
// @Param       limit      query int    false "Page size (max 100)"
// @Success     200 {object} models.Page[models.Review]
// @Router      /artisans/{artisan_id}/reviews [get]
func (h *ReviewsHandler) ListForArtisan(c *gin.Context) {
	artisanID, ok := uuidParam(c, "artisan_id")
	if !ok {
		return
	}

	var p models.Pagination
	if !bindQuery(c, &p) {
		return
	}

	page, err := h.service.ListForUser(c.Request.Context(), artisanID, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
