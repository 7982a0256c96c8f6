package handlers

import (
	"net/http"

	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type GenerationsHandler struct {
	service *services.ImageService
}

func NewGenerationsHandler(service *services.ImageService) *GenerationsHandler {
	return &GenerationsHandler{service: service}
}

// Generate godoc
// @Summary     Generate a furniture concept image
// @Description Enhances the prompt with the AI text model, renders an image and stores it
// @Description for the caller. Rate limited per user.
// @Tags        generations
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateImageRequest true "Prompt"
// @Success     201 {object} models.GeneratedImage
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Failure     504 {object} models.ErrorResponse
// @Router      /generations [post]
func (h *GenerationsHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.GenerateImageRequest
	if !bindJSON(c, &req) {
		return
	}

	img, err := h.service.Generate(c.Request.Context(), userID, middleware.Role(c), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// List godoc
// @Summary     List the caller's generated images
// @Tags        generations
// @Produce     json
// @Security    Bearer
// @Param       page  query int false "Page (1-indexed)"
// @Param       limit query int false "Page size (max 100)"
// @Success     200 {object} models.Page[models.GeneratedImage]
// @Failure     401 {object} models.ErrorResponse
// @Router      /generations [get]
func (h *GenerationsHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var p models.Pagination
	if !bindQuery(c, &p) {
		return
	}

	page, err := h.service.List(c.Request.Context(), userID, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary     Get one of the caller's generated images
// @Tags        generations
// @Produce     json
// @Security    Bearer
// @Param       image_id path string true "Image ID (UUID)"
// @Success     200 {object} models.GeneratedImage
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /generations/{image_id} [get]
func (h *GenerationsHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	imageID, ok := uuidParam(c, "image_id")
	if !ok {
		return
	}

	img, err := h.service.Get(c.Request.Context(), userID, imageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}
