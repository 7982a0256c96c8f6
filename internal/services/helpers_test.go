package services_test

import (
	"context"
	"io"
	"testing"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/metrics"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/services"
	"artisan-marketplace-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *testutil.MemoryStore
	blobs     *testutil.BlobStore
	generator *testutil.Generator
	metrics   *metrics.Metrics

	images    *services.ImageService
	projects  *services.ProjectService
	proposals *services.ProposalService
	artisans  *services.ArtisanService
	reviews   *services.ReviewService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		store:     testutil.NewMemoryStore(),
		blobs:     testutil.NewBlobStore(),
		generator: testutil.NewGenerator(),
		metrics:   metrics.New(),
	}
	f.images = services.NewImageService(f.store, f.generator, f.blobs, f.metrics, logger)
	f.projects = services.NewProjectService(f.store, f.store, f.store, f.metrics)
	f.proposals = services.NewProposalService(f.store, f.store, f.blobs, f.metrics, logger)
	f.artisans = services.NewArtisanService(f.store, f.store, f.blobs, logger)
	f.reviews = services.NewReviewService(f.store, f.store, f.store)
	return f
}

func (f *fixture) openProject(t *testing.T, clientID uuid.UUID) *models.ProjectDetails {
	t.Helper()
	ctx := context.Background()

	img, err := f.images.Generate(ctx, clientID, models.RoleClient, "Oak dining table for six")
	require.NoError(t, err)

	project, err := f.projects.Create(ctx, clientID, models.RoleClient, models.CreateProjectRequest{
		GeneratedImageID: img.ID.String(),
		CategoryID:       1,
		MaterialID:       1,
	})
	require.NoError(t, err)
	return project
}

func (f *fixture) propose(t *testing.T, projectID, artisanID uuid.UUID, price float64) *models.Proposal {
	t.Helper()
	proposal, err := f.proposals.Submit(context.Background(), models.NewProposal{
		ProjectID: projectID,
		ArtisanID: artisanID,
		Role:      models.RoleArtisan,
		Price:     price,
	})
	require.NoError(t, err)
	return proposal
}

func assertCode(t *testing.T, want apperrors.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apperrors.CodeOf(err), "error: %v", err)
}
