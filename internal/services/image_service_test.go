package services_test

import (
	"context"
	"errors"
	"testing"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/imagegen"
	"artisan-marketplace-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clientID := uuid.New()

	img, err := f.images.Generate(ctx, clientID, models.RoleClient, "Oak dining table")
	require.NoError(t, err)
	assert.Equal(t, "Oak dining table", img.Prompt)
	assert.Equal(t, "Oak table", *img.Title)
	assert.Regexp(t, "^"+clientID.String()+"/[0-9]+-[0-9a-f]{8}\\.png$", img.StoragePath)
	assert.False(t, img.Used)

	got, err := f.images.Get(ctx, clientID, img.ID)
	require.NoError(t, err)
	assert.Equal(t, img.ImageURL, got.ImageURL)

	_, err = f.images.Get(ctx, uuid.New(), img.ID)
	assertCode(t, apperrors.CodeImageForbidden, err)

	page, err := f.images.List(ctx, clientID, models.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestGenerateImageRequiresClient(t *testing.T) {
	f := newFixture(t)
	_, err := f.images.Generate(context.Background(), uuid.New(), models.RoleArtisan, "Chair")
	assertCode(t, apperrors.CodeClientRoleRequired, err)
	assert.Zero(t, f.generator.Calls)
}

func TestGenerateImageErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Code
	}{
		{"validation", &imagegen.Error{Kind: imagegen.KindValidation}, apperrors.CodeAIInvalidResponse},
		{"timeout", &imagegen.Error{Kind: imagegen.KindTimeout}, apperrors.CodeAITimeout},
		{"status", &imagegen.Error{Kind: imagegen.KindHTTPStatus, StatusCode: 500}, apperrors.CodeAIUpstreamError},
		{"network", &imagegen.Error{Kind: imagegen.KindNetwork}, apperrors.CodeAIUnavailable},
		{"unknown", errors.New("boom"), apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.generator.EnhanceErr = tt.err

			_, err := f.images.Generate(context.Background(), uuid.New(), models.RoleClient, "Chair")
			assertCode(t, tt.want, err)
			assert.Zero(t, f.blobs.Len())
		})
	}
}

func TestGenerateImageRejectsNonImagePayload(t *testing.T) {
	f := newFixture(t)
	f.generator.Image = []byte("<html>not an image</html>")

	_, err := f.images.Generate(context.Background(), uuid.New(), models.RoleClient, "Chair")
	assertCode(t, apperrors.CodeAIInvalidResponse, err)
	assert.Zero(t, f.blobs.Len())
}
