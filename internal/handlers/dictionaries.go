package handlers

import (
	"context"
	"net/http"

	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type DictionariesHandler struct {
	service *services.DictionaryService
}

func NewDictionariesHandler(service *services.DictionaryService) *DictionariesHandler {
	return &DictionariesHandler{service: service}
}

func serveDictionary[T any](list func(ctx context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := list(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.JSON(http.StatusOK, models.DictionaryResponse[T]{Items: items})
	}
}

// Categories godoc
// @Summary     List furniture categories
// @Tags        dictionaries
// @Produce     json
// @Success     200 {object} models.DictionaryResponse[models.Category]
// @Failure     500 {object} models.ErrorResponse
// @Router      /categories [get]
func (h *DictionariesHandler) Categories(c *gin.Context) {
	serveDictionary(h.service.Categories)(c)
}

// Materials godoc
// @Summary     List materials
// @Tags        dictionaries
// @Produce     json
// @Success     200 {object} models.DictionaryResponse[models.Material]
// @Failure     500 {object} models.ErrorResponse
// @Router      /materials [get]
func (h *DictionariesHandler) Materials(c *gin.Context) {
	serveDictionary(h.service.Materials)(c)
}

// Specializations godoc
// @Summary     List artisan specializations
// @Tags        dictionaries
// @Produce     json
// @Success     200 {object} models.DictionaryResponse[models.Specialization]
// @Failure     500 {object} models.ErrorResponse
// @Router      /specializations [get]
func (h *DictionariesHandler) Specializations(c *gin.Context) {
	serveDictionary(h.service.Specializations)(c)
}
