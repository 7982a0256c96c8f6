package middleware

import (
	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/models"
	"github.com/gin-gonic/gin"
)

const LocaleKey = "locale"

// Locale negotiates the response language from Accept-Language.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(LocaleKey, apperrors.NegotiateLocale(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// LocaleFrom returns the negotiated locale, defaulting to English.
func LocaleFrom(c *gin.Context) string {
	if locale := c.GetString(LocaleKey); locale != "" {
		return locale
	}
	return apperrors.LocaleEN
}

// ErrorBody renders err in the caller's language.
func ErrorBody(c *gin.Context, err *apperrors.Error) models.ErrorResponse {
	return models.ErrorResponse{Error: models.ErrorBody{
		Code:    string(err.Code),
		Message: apperrors.Localize(err.Code, LocaleFrom(c), err.Metadata),
	}}
}

// AbortWithError stops the chain and writes err as the JSON error envelope.
func AbortWithError(c *gin.Context, err *apperrors.Error) {
	c.AbortWithStatusJSON(err.HTTPStatus(), ErrorBody(c, err))
}
