package models

import (
	"fmt"
	"strings"
	"time"

	"artisan-marketplace-backend/internal/apperrors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Extension   string
	Data        []byte
}

// UploadPolicy constrains the size and sniffed type of an upload.
type UploadPolicy struct {
	MaxBytes     int64
	AllowedTypes []string
}

var (
	AttachmentPolicy = UploadPolicy{
		MaxBytes:     10 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"},
	}
	PortfolioImagePolicy = UploadPolicy{
		MaxBytes:     5 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
	}
	GeneratedImagePolicy = UploadPolicy{
		MaxBytes:     20 << 20,
		AllowedTypes: []string{"image/png", "image/jpeg", "image/webp"},
	}
)

// Validate sniffs the upload's content, rejecting empty, oversized or
// disallowed files, and fills ContentType and Extension from the detected
// type rather than the client-supplied filename.
func (p UploadPolicy) Validate(u *Upload) error {
	if u == nil || len(u.Data) == 0 {
		return invalidFile("file is empty")
	}
	if int64(len(u.Data)) > p.MaxBytes {
		return invalidFile(fmt.Sprintf("file exceeds %d MiB", p.MaxBytes>>20))
	}

	detected := mimetype.Detect(u.Data)
	for _, allowed := range p.AllowedTypes {
		if detected.Is(allowed) {
			u.ContentType = allowed
			u.Extension = strings.TrimPrefix(detected.Extension(), ".")
			return nil
		}
	}
	return invalidFile(fmt.Sprintf("type %s is not allowed", detected.String()))
}

func invalidFile(reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidFile, "invalid upload: "+reason,
		map[string]string{"Reason": reason})
}

// ObjectPath builds a storage key of the form
// {owner}/{scope}/{unix}-{random}.{ext}. The scope segment is omitted when
// scope is uuid.Nil.
func ObjectPath(owner, scope uuid.UUID, ext string, now time.Time) string {
	name := fmt.Sprintf("%d-%s.%s", now.Unix(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8], ext)
	if scope == uuid.Nil {
		return owner.String() + "/" + name
	}
	return owner.String() + "/" + scope.String() + "/" + name
}
