package services

import (
	"context"
	"errors"
	"strconv"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type ArtisanService struct {
	artisans  ArtisanStore
	reviews   ReviewStore
	portfolio BlobStore
	logger    logrus.FieldLogger
}

func NewArtisanService(artisans ArtisanStore, reviews ReviewStore, portfolio BlobStore, logger logrus.FieldLogger) *ArtisanService {
	return &ArtisanService{
		artisans:  artisans,
		reviews:   reviews,
		portfolio: portfolio,
		logger:    logger,
	}
}

// UpsertProfile creates or updates the caller's business profile. The NIP
// pre-check only yields a friendly error; the unique constraint decides.
func (s *ArtisanService) UpsertProfile(ctx context.Context, userID uuid.UUID, role models.Role, req models.UpsertArtisanProfileRequest) (*models.ArtisanProfile, error) {
	if role != models.RoleArtisan {
		return nil, apperrors.New(apperrors.CodeArtisanRoleRequired, "only artisans have a business profile")
	}

	owner, err := s.artisans.FindNIPOwner(ctx, req.NIP)
	switch {
	case err == nil && owner != userID:
		return nil, apperrors.New(apperrors.CodeNIPAlreadyExists, "nip registered to another artisan")
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, internalErr("find nip owner", err)
	}

	profile := &models.ArtisanProfile{
		UserID:      userID,
		CompanyName: req.CompanyName,
		NIP:         req.NIP,
	}
	if err := s.artisans.UpsertArtisanProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperrors.Wrap(apperrors.CodeNIPAlreadyExists, "nip registered to another artisan", err)
		}
		return nil, internalErr("upsert artisan profile", err)
	}

	if err := s.artisans.ReplaceSpecializations(ctx, userID, req.SpecializationIDs); err != nil {
		if errors.Is(err, store.ErrReference) {
			return nil, apperrors.Wrap(apperrors.CodeInvalidRequest, "unknown specialization", err)
		}
		return nil, internalErr("replace specializations", err)
	}

	return s.GetOwnProfile(ctx, userID)
}

func (s *ArtisanService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*models.ArtisanProfile, error) {
	profile, err := s.artisans.GetArtisanProfile(ctx, userID)
	if err != nil {
		return nil, notFound(err, apperrors.CodeProfileNotFound, "get artisan profile")
	}
	return profile, nil
}

// GetPublicProfile returns a profile with its portfolio and rating. Hidden
// profiles are visible only to their owner.
func (s *ArtisanService) GetPublicProfile(ctx context.Context, artisanID uuid.UUID, viewerID *uuid.UUID) (*models.ArtisanPublicProfile, error) {
	profile, err := s.artisans.GetArtisanProfile(ctx, artisanID)
	if err != nil {
		return nil, notFound(err, apperrors.CodeProfileNotFound, "get artisan profile")
	}
	if !profile.IsPublic && (viewerID == nil || *viewerID != artisanID) {
		return nil, apperrors.New(apperrors.CodeProfileNotFound, "profile is not public")
	}

	result := &models.ArtisanPublicProfile{ArtisanProfile: *profile}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Portfolio, err = s.artisans.ListPortfolioImages(gctx, artisanID)
		return err
	})
	g.Go(func() error {
		var err error
		result.Rating, err = s.reviews.GetRatingSummary(gctx, artisanID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, internalErr("load public profile", err)
	}
	return result, nil
}

// SetVisibility publishes or hides the caller's profile. Publishing does not
// check the portfolio size.
func (s *ArtisanService) SetVisibility(ctx context.Context, userID uuid.UUID, isPublic bool) (*models.ArtisanProfile, error) {
	profile, err := s.artisans.SetArtisanVisibility(ctx, userID, isPublic)
	if err != nil {
		return nil, notFound(err, apperrors.CodeProfileNotFound, "set artisan visibility")
	}
	return profile, nil
}

func (s *ArtisanService) AddPortfolioImage(ctx context.Context, userID uuid.UUID, upload *models.Upload) (*models.PortfolioImage, error) {
	if _, err := s.GetOwnProfile(ctx, userID); err != nil {
		return nil, err
	}

	storagePath := models.ObjectPath(userID, uuid.Nil, upload.Extension, now())
	url, err := s.portfolio.Upload(ctx, storagePath, upload.ContentType, upload.Data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUploadFailed, "upload portfolio image", err)
	}

	img := &models.PortfolioImage{
		ArtisanID:   userID,
		ImageURL:    url,
		StoragePath: storagePath,
	}
	if err := s.artisans.CreatePortfolioImage(ctx, img); err != nil {
		s.removeBlob(ctx, storagePath)
		return nil, internalErr("create portfolio image", err)
	}
	return img, nil
}

// DeletePortfolioImage removes an image unless the profile is public and
// holds no more than the minimum number of images.
func (s *ArtisanService) DeletePortfolioImage(ctx context.Context, userID, imageID uuid.UUID) error {
	img, err := s.artisans.GetPortfolioImage(ctx, imageID)
	if err != nil {
		return notFound(err, apperrors.CodePortfolioImageNotFound, "get portfolio image")
	}
	if img.ArtisanID != userID {
		return apperrors.New(apperrors.CodePortfolioImageNotFound, "image belongs to another artisan")
	}

	profile, err := s.GetOwnProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile.IsPublic {
		count, err := s.artisans.CountPortfolioImages(ctx, userID)
		if err != nil {
			return internalErr("count portfolio images", err)
		}
		if count <= models.MinPublicPortfolioImages {
			return apperrors.WithMetadata(apperrors.CodeMinImagesRequired, "public profile needs its portfolio",
				map[string]string{"Min": strconv.Itoa(models.MinPublicPortfolioImages)})
		}
	}

	if err := s.artisans.DeletePortfolioImage(ctx, imageID); err != nil {
		return notFound(err, apperrors.CodePortfolioImageNotFound, "delete portfolio image")
	}
	s.removeBlob(ctx, img.StoragePath)
	return nil
}

func (s *ArtisanService) removeBlob(ctx context.Context, storagePath string) {
	if err := s.portfolio.Remove(context.WithoutCancel(ctx), storagePath); err != nil {
		s.logger.WithError(err).WithField("path", storagePath).Warn("failed to remove portfolio blob")
	}
}

// ListPublic is the public artisan directory.
func (s *ArtisanService) ListPublic(ctx context.Context, filter models.ArtisanFilter) (models.Page[models.ArtisanSummary], error) {
	return fetchPage(ctx, filter.Pagination,
		func(ctx context.Context) ([]models.ArtisanSummary, error) {
			return s.artisans.ListPublicArtisans(ctx, filter)
		},
		func(ctx context.Context) (int, error) { return s.artisans.CountPublicArtisans(ctx, filter) },
	)
}
