package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/logging"
	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// respondError writes err as the JSON error envelope. Binding failures become
// 422 with per-field details; unknown errors are logged and hidden behind a
// generic 500.
func respondError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	if tooLarge := bodyTooLarge(err); tooLarge != nil {
		err = tooLarge
	}

	switch {
	case errors.As(err, &validationErrs):
		body := middleware.ErrorBody(c, apperrors.New(apperrors.CodeValidation, "validation failed"))
		for _, fe := range validationErrs {
			body.Error.Details = append(body.Error.Details, models.FieldError{
				Field: fe.Field(),
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, body)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		middleware.AbortWithError(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "malformed request body", err))
	default:
		appErr, ok := apperrors.As(err)
		if !ok {
			appErr = apperrors.Wrap(apperrors.CodeInternal, "unexpected error", err)
		}
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			logging.FromContext(c).WithError(err).WithField("code", appErr.Code).Error("request failed")
		}
		_ = c.Error(err)
		middleware.AbortWithError(c, appErr)
	}
}

// currentUser returns the authenticated caller. Routes using it sit behind
// the required authenticator, so a miss is an internal wiring error.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
	}
	return userID, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		respondError(c, err)
		return false
	}
	return true
}
