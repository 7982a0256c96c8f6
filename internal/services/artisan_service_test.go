package services_test

import (
	"context"
	"testing"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) artisanProfile(t *testing.T, userID uuid.UUID, nip string) *models.ArtisanProfile {
	t.Helper()
	profile, err := f.artisans.UpsertProfile(context.Background(), userID, models.RoleArtisan, models.UpsertArtisanProfileRequest{
		CompanyName:       "Stolarnia " + nip,
		NIP:               nip,
		SpecializationIDs: []int64{1},
	})
	require.NoError(t, err)
	return profile
}

func (f *fixture) addPortfolio(t *testing.T, userID uuid.UUID, n int) []*models.PortfolioImage {
	t.Helper()
	var out []*models.PortfolioImage
	for i := 0; i < n; i++ {
		img, err := f.artisans.AddPortfolioImage(context.Background(), userID, &models.Upload{
			ContentType: "image/png", Extension: "png", Data: testutil.PNG,
		})
		require.NoError(t, err)
		out = append(out, img)
	}
	return out
}

func TestUpsertProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()

	profile := f.artisanProfile(t, userID, "5260250274")
	assert.False(t, profile.IsPublic, "new profiles start hidden")
	require.Len(t, profile.Specializations, 1)
	assert.Equal(t, "Carpentry", profile.Specializations[0].Name)

	_, err := f.artisans.SetVisibility(ctx, userID, true)
	require.NoError(t, err)

	updated, err := f.artisans.UpsertProfile(ctx, userID, models.RoleArtisan, models.UpsertArtisanProfileRequest{
		CompanyName:       "Renamed",
		NIP:               "5260250274",
		SpecializationIDs: []int64{2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.CompanyName)
	assert.True(t, updated.IsPublic, "upsert keeps visibility")
	require.Len(t, updated.Specializations, 1)
	assert.Equal(t, "Upholstery", updated.Specializations[0].Name)
}

func TestUpsertProfileRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.artisanProfile(t, uuid.New(), "5260250274")

	_, err := f.artisans.UpsertProfile(ctx, uuid.New(), models.RoleArtisan, models.UpsertArtisanProfileRequest{
		CompanyName: "Copycat", NIP: "5260250274",
	})
	assertCode(t, apperrors.CodeNIPAlreadyExists, err)

	_, err = f.artisans.UpsertProfile(ctx, uuid.New(), models.RoleClient, models.UpsertArtisanProfileRequest{
		CompanyName: "Client", NIP: "1234563218",
	})
	assertCode(t, apperrors.CodeArtisanRoleRequired, err)

	_, err = f.artisans.UpsertProfile(ctx, uuid.New(), models.RoleArtisan, models.UpsertArtisanProfileRequest{
		CompanyName: "Unknown spec", NIP: "1234563218", SpecializationIDs: []int64{42},
	})
	assertCode(t, apperrors.CodeInvalidRequest, err)

	_, err = f.artisans.GetOwnProfile(ctx, uuid.New())
	assertCode(t, apperrors.CodeProfileNotFound, err)
}

func TestPortfolioMinimumOnPublicProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()
	f.artisanProfile(t, userID, "5260250274")
	images := f.addPortfolio(t, userID, 6)

	_, err := f.artisans.SetVisibility(ctx, userID, true)
	require.NoError(t, err)

	require.NoError(t, f.artisans.DeletePortfolioImage(ctx, userID, images[0].ID))
	assert.Contains(t, f.blobs.Removed, images[0].StoragePath)

	err = f.artisans.DeletePortfolioImage(ctx, userID, images[1].ID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMinImagesRequired, appErr.Code)
	assert.Equal(t, "5", appErr.Metadata["Min"])

	_, err = f.artisans.SetVisibility(ctx, userID, false)
	require.NoError(t, err)
	require.NoError(t, f.artisans.DeletePortfolioImage(ctx, userID, images[1].ID))

	count, err := f.store.CountPortfolioImages(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestDeleteOnlyImageOfHiddenProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()
	f.artisanProfile(t, userID, "5260250274")
	images := f.addPortfolio(t, userID, 1)

	require.NoError(t, f.artisans.DeletePortfolioImage(ctx, userID, images[0].ID))

	count, err := f.store.CountPortfolioImages(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeletePortfolioImageOfAnotherArtisan(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	f.artisanProfile(t, owner, "5260250274")
	images := f.addPortfolio(t, owner, 1)

	err := f.artisans.DeletePortfolioImage(context.Background(), uuid.New(), images[0].ID)
	assertCode(t, apperrors.CodePortfolioImageNotFound, err)
}

func TestAddPortfolioImageRequiresProfile(t *testing.T) {
	_, err := newFixture(t).artisans.AddPortfolioImage(context.Background(), uuid.New(), &models.Upload{
		ContentType: "image/png", Extension: "png", Data: testutil.PNG,
	})
	assertCode(t, apperrors.CodeProfileNotFound, err)
}

func TestPublicProfileVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := uuid.New()
	f.artisanProfile(t, owner, "5260250274")
	f.addPortfolio(t, owner, 2)

	_, err := f.artisans.GetPublicProfile(ctx, owner, nil)
	assertCode(t, apperrors.CodeProfileNotFound, err)

	own, err := f.artisans.GetPublicProfile(ctx, owner, &owner)
	require.NoError(t, err)
	assert.Len(t, own.Portfolio, 2)

	_, err = f.artisans.SetVisibility(ctx, owner, true)
	require.NoError(t, err)

	public, err := f.artisans.GetPublicProfile(ctx, owner, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, public.Rating.Count)

	listed, err := f.artisans.ListPublic(ctx, models.ArtisanFilter{SpecializationID: 1})
	require.NoError(t, err)
	require.Equal(t, 1, listed.Total)
	assert.Equal(t, 2, listed.Items[0].PortfolioCount)

	none, err := f.artisans.ListPublic(ctx, models.ArtisanFilter{SpecializationID: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
	assert.Empty(t, none.Items)
}
