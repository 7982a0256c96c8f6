// Package apperrors provides coded errors that carry an HTTP status and a
// localized, user-facing message.
package apperrors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// Generic errors
	CodeUnauthorized   Code = "UNAUTHORIZED"
	CodeForbidden      Code = "FORBIDDEN"
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeNotFound       Code = "NOT_FOUND"
	CodeInternal       Code = "INTERNAL_ERROR"
	CodeRateLimited    Code = "RATE_LIMITED"

	// Role errors
	CodeClientRoleRequired  Code = "CLIENT_ROLE_REQUIRED"
	CodeArtisanRoleRequired Code = "ARTISAN_ROLE_REQUIRED"

	// Project errors
	CodeProjectNotFound         Code = "PROJECT_NOT_FOUND"
	CodeProjectForbidden        Code = "PROJECT_FORBIDDEN"
	CodeInvalidStatusTransition Code = "INVALID_STATUS_TRANSITION"
	CodeProjectNotOpen          Code = "PROJECT_NOT_OPEN"
	CodeProjectStatusConflict   Code = "PROJECT_STATUS_CONFLICT"

	// Generated image errors
	CodeImageNotFound    Code = "IMAGE_NOT_FOUND"
	CodeImageForbidden   Code = "IMAGE_FORBIDDEN"
	CodeImageAlreadyUsed Code = "IMAGE_ALREADY_USED"

	// Proposal errors
	CodeProposalNotFound             Code = "PROPOSAL_NOT_FOUND"
	CodeProposalRoleRequired         Code = "PROPOSAL_ROLE_REQUIRED"
	CodeProjectNotAcceptingProposals Code = "PROJECT_NOT_ACCEPTING_PROPOSALS"
	CodeProposalAlreadyExists        Code = "PROPOSAL_ALREADY_EXISTS"

	// Artisan profile errors
	CodeProfileNotFound        Code = "PROFILE_NOT_FOUND"
	CodeNIPAlreadyExists       Code = "NIP_ALREADY_EXISTS"
	CodeMinImagesRequired      Code = "MIN_IMAGES_REQUIRED"
	CodePortfolioImageNotFound Code = "PORTFOLIO_IMAGE_NOT_FOUND"

	// Upload errors
	CodeInvalidFile  Code = "INVALID_FILE"
	CodeUploadFailed Code = "UPLOAD_FAILED"

	// Review errors
	CodeProjectNotCompleted Code = "PROJECT_NOT_COMPLETED"
	CodeReviewForbidden     Code = "REVIEW_FORBIDDEN"
	CodeReviewAlreadyExists Code = "REVIEW_ALREADY_EXISTS"

	// AI collaborator errors
	CodeAIInvalidResponse Code = "AI_INVALID_RESPONSE"
	CodeAIUpstreamError   Code = "AI_UPSTREAM_ERROR"
	CodeAIUnavailable     Code = "AI_UNAVAILABLE"
	CodeAITimeout         Code = "AI_TIMEOUT"
)

var httpStatuses = map[Code]int{
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeInvalidRequest: http.StatusBadRequest,
	CodeValidation:     http.StatusUnprocessableEntity,
	CodeNotFound:       http.StatusNotFound,
	CodeInternal:       http.StatusInternalServerError,
	CodeRateLimited:    http.StatusTooManyRequests,

	CodeClientRoleRequired:  http.StatusForbidden,
	CodeArtisanRoleRequired: http.StatusForbidden,

	CodeProjectNotFound:         http.StatusNotFound,
	CodeProjectForbidden:        http.StatusForbidden,
	CodeInvalidStatusTransition: http.StatusBadRequest,
	CodeProjectNotOpen:          http.StatusBadRequest,
	CodeProjectStatusConflict:   http.StatusConflict,

	CodeImageNotFound:    http.StatusNotFound,
	CodeImageForbidden:   http.StatusForbidden,
	CodeImageAlreadyUsed: http.StatusConflict,

	CodeProposalNotFound:             http.StatusNotFound,
	CodeProposalRoleRequired:         http.StatusForbidden,
	CodeProjectNotAcceptingProposals: http.StatusForbidden,
	CodeProposalAlreadyExists:        http.StatusConflict,

	CodeProfileNotFound:        http.StatusNotFound,
	CodeNIPAlreadyExists:       http.StatusConflict,
	CodeMinImagesRequired:      http.StatusBadRequest,
	CodePortfolioImageNotFound: http.StatusNotFound,

	CodeInvalidFile:  http.StatusUnprocessableEntity,
	CodeUploadFailed: http.StatusInternalServerError,

	CodeProjectNotCompleted: http.StatusBadRequest,
	CodeReviewForbidden:     http.StatusForbidden,
	CodeReviewAlreadyExists: http.StatusConflict,

	CodeAIInvalidResponse: http.StatusBadGateway,
	CodeAIUpstreamError:   http.StatusBadGateway,
	CodeAIUnavailable:     http.StatusServiceUnavailable,
	CodeAITimeout:         http.StatusGatewayTimeout,
}

// HTTPStatus maps a code to the HTTP status used in responses.
// Unknown codes map to 500.
func (c Code) HTTPStatus() int {
	if status, ok := httpStatuses[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}
