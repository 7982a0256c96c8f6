package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// multipartOverhead covers form fields and part headers sent alongside the
// file.
const multipartOverhead = 1 << 20

// limitBody caps the whole request body for an upload route, so an oversized
// form fails while it is parsed instead of after it is buffered.
func limitBody(c *gin.Context, policy models.UploadPolicy) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, policy.MaxBytes+multipartOverhead)
}

func bodyTooLarge(err error) error {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return nil
	}
	reason := fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
	return apperrors.WithMetadata(apperrors.CodeInvalidFile, reason, map[string]string{"Reason": reason})
}

// readUpload loads the multipart file in field and validates it against
// policy. A missing optional file yields (nil, nil).
func readUpload(c *gin.Context, field string, policy models.UploadPolicy, required bool) (*models.Upload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) && !required {
		return nil, nil
	}
	if err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			return nil, tooLarge
		}
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidFile, "missing "+field,
			map[string]string{"Reason": "missing " + field})
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidRequest, "open upload", err)
	}
	defer src.Close()

	// One byte past the limit is enough for the policy to reject it.
	data, err := io.ReadAll(io.LimitReader(src, policy.MaxBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidRequest, "read upload", err)
	}

	upload := &models.Upload{Filename: header.Filename, Data: data}
	if err := policy.Validate(upload); err != nil {
		return nil, err
	}
	return upload, nil
}
