package services

import (
	"context"
	"errors"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/imagegen"
	"artisan-marketplace-backend/internal/metrics"
	"artisan-marketplace-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ImageService struct {
	images    ImageStore
	generator ImageGenerator
	blobs     BlobStore
	metrics   *metrics.Metrics
	logger    logrus.FieldLogger
}

func NewImageService(images ImageStore, generator ImageGenerator, blobs BlobStore, m *metrics.Metrics, logger logrus.FieldLogger) *ImageService {
	return &ImageService{
		images:    images,
		generator: generator,
		blobs:     blobs,
		metrics:   m,
		logger:    logger,
	}
}

// Generate enhances the prompt, renders a concept image and stores it for
// the client.
func (s *ImageService) Generate(ctx context.Context, userID uuid.UUID, role models.Role, prompt string) (*models.GeneratedImage, error) {
	if role != models.RoleClient {
		return nil, apperrors.New(apperrors.CodeClientRoleRequired, "only clients can generate images")
	}

	img, err := s.generate(ctx, userID, prompt)
	if err != nil {
		s.metrics.Generation(string(apperrors.CodeOf(err)))
		return nil, err
	}
	s.metrics.Generation("success")
	return img, nil
}

func (s *ImageService) generate(ctx context.Context, userID uuid.UUID, prompt string) (*models.GeneratedImage, error) {
	enhanced, err := s.generator.EnhancePrompt(ctx, prompt)
	if err != nil {
		return nil, generatorError(err)
	}

	data, err := s.generator.GenerateImage(ctx, enhanced.Prompt)
	if err != nil {
		return nil, generatorError(err)
	}

	upload := &models.Upload{Filename: "generated", Data: data}
	if err := models.GeneratedImagePolicy.Validate(upload); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeAIInvalidResponse, "generated image rejected", err)
	}

	storagePath := models.ObjectPath(userID, uuid.Nil, upload.Extension, now())
	url, err := s.blobs.Upload(ctx, storagePath, upload.ContentType, upload.Data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUploadFailed, "upload generated image", err)
	}

	img := &models.GeneratedImage{
		UserID:         userID,
		Prompt:         prompt,
		EnhancedPrompt: &enhanced.Prompt,
		Title:          &enhanced.Title,
		ImageURL:       url,
		StoragePath:    storagePath,
	}
	if err := s.images.CreateGeneratedImage(ctx, img); err != nil {
		if rmErr := s.blobs.Remove(context.WithoutCancel(ctx), storagePath); rmErr != nil {
			s.logger.WithError(rmErr).WithField("path", storagePath).Warn("failed to remove orphaned generated image")
		}
		return nil, internalErr("create generated image", err)
	}
	return img, nil
}

func generatorError(err error) error {
	var genErr *imagegen.Error
	if !errors.As(err, &genErr) {
		return internalErr("generate image", err)
	}
	switch genErr.Kind {
	case imagegen.KindValidation:
		return apperrors.Wrap(apperrors.CodeAIInvalidResponse, "invalid AI response", err)
	case imagegen.KindTimeout:
		return apperrors.Wrap(apperrors.CodeAITimeout, "AI request timed out", err)
	case imagegen.KindHTTPStatus:
		return apperrors.Wrap(apperrors.CodeAIUpstreamError, "AI request rejected", err)
	default:
		return apperrors.Wrap(apperrors.CodeAIUnavailable, "AI service unreachable", err)
	}
}

// Get returns one of the caller's generated images.
func (s *ImageService) Get(ctx context.Context, userID, imageID uuid.UUID) (*models.GeneratedImage, error) {
	img, err := s.images.GetGeneratedImage(ctx, imageID)
	if err != nil {
		return nil, notFound(err, apperrors.CodeImageNotFound, "get generated image")
	}
	if img.UserID != userID {
		return nil, apperrors.New(apperrors.CodeImageForbidden, "image belongs to another user")
	}
	return img, nil
}

func (s *ImageService) List(ctx context.Context, userID uuid.UUID, p models.Pagination) (models.Page[models.GeneratedImage], error) {
	return fetchPage(ctx, p,
		func(ctx context.Context) ([]models.GeneratedImage, error) {
			return s.images.ListGeneratedImages(ctx, userID, p)
		},
		func(ctx context.Context) (int, error) { return s.images.CountGeneratedImages(ctx, userID) },
	)
}
