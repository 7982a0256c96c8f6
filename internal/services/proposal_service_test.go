package services_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/services"
	"artisan-marketplace-backend/internal/store"
	"artisan-marketplace-backend/internal/testutil"
	"github.com/google/uuid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfAttachment() *models.Upload {
	return &models.Upload{
		Filename:    "quote.pdf",
		ContentType: "application/pdf",
		Extension:   "pdf",
		Data:        []byte("%PDF-1.4\n%quote\n"),
	}
}

func TestSubmitProposalWithAttachment(t *testing.T) {
	f := newFixture(t)
	clientID, artisanID := uuid.New(), uuid.New()
	project := f.openProject(t, clientID)
	before := f.blobs.Len()

	proposal, err := f.proposals.Submit(context.Background(), models.NewProposal{
		ProjectID:  project.ID,
		ArtisanID:  artisanID,
		Role:       models.RoleArtisan,
		Price:      2500,
		Message:    "  Ready in three weeks  ",
		Attachment: pdfAttachment(),
	})
	require.NoError(t, err)

	require.NotNil(t, proposal.Message)
	assert.Equal(t, "Ready in three weeks", *proposal.Message)
	require.NotNil(t, proposal.AttachmentPath)
	assert.Regexp(t, "^"+artisanID.String()+"/"+project.ID.String()+"/.+\\.pdf$", *proposal.AttachmentPath)
	assert.Equal(t, before+1, f.blobs.Len())
}

func TestSubmitProposalGuardOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clientID, artisanID := uuid.New(), uuid.New()
	project := f.openProject(t, clientID)

	_, err := f.proposals.Submit(ctx, models.NewProposal{
		ProjectID: uuid.New(), ArtisanID: clientID, Role: models.RoleClient, Price: 10,
	})
	assertCode(t, apperrors.CodeProposalRoleRequired, err)

	_, err = f.proposals.Submit(ctx, models.NewProposal{
		ProjectID: uuid.New(), ArtisanID: artisanID, Role: models.RoleArtisan, Price: 10,
	})
	assertCode(t, apperrors.CodeProjectNotFound, err)

	f.propose(t, project.ID, artisanID, 100)
	uploads := f.blobs.Len()

	_, err = f.proposals.Submit(ctx, models.NewProposal{
		ProjectID: project.ID, ArtisanID: artisanID, Role: models.RoleArtisan, Price: 90,
		Attachment: pdfAttachment(),
	})
	assertCode(t, apperrors.CodeProposalAlreadyExists, err)
	assert.Equal(t, uploads, f.blobs.Len(), "rejected submission must not upload")

	_, err = f.projects.UpdateStatus(ctx, project.ID, clientID, models.ProjectStatusClosed)
	require.NoError(t, err)

	_, err = f.proposals.Submit(ctx, models.NewProposal{
		ProjectID: project.ID, ArtisanID: artisanID, Role: models.RoleArtisan, Price: 90,
	})
	assertCode(t, apperrors.CodeProjectNotAcceptingProposals, err)
}

func TestSubmitProposalUploadFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	project := f.openProject(t, uuid.New())
	artisanID := uuid.New()

	f.blobs.UploadErr = errors.New("bucket unavailable")
	_, err := f.proposals.Submit(ctx, models.NewProposal{
		ProjectID: project.ID, ArtisanID: artisanID, Role: models.RoleArtisan, Price: 10,
		Attachment: pdfAttachment(),
	})
	assertCode(t, apperrors.CodeUploadFailed, err)

	exists, err := f.store.HasProposal(ctx, project.ID, artisanID)
	require.NoError(t, err)
	assert.False(t, exists)
}

// racingStore loses the unique-constraint race on insert.
type racingStore struct {
	*testutil.MemoryStore
}

func (racingStore) CreateProposal(context.Context, *models.Proposal) error {
	return store.ErrConflict
}

func TestSubmitProposalRemovesAttachmentWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	project := f.openProject(t, uuid.New())
	before := f.blobs.Len()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := services.NewProposalService(racingStore{f.store}, f.store, f.blobs, nil, logger)

	_, err := svc.Submit(context.Background(), models.NewProposal{
		ProjectID: project.ID, ArtisanID: uuid.New(), Role: models.RoleArtisan, Price: 10,
		Attachment: pdfAttachment(),
	})
	assertCode(t, apperrors.CodeProposalAlreadyExists, err)
	assert.Equal(t, before, f.blobs.Len())
	assert.Len(t, f.blobs.Removed, 1)
}

func TestListProposalsForProjectVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clientID, first, second := uuid.New(), uuid.New(), uuid.New()
	project := f.openProject(t, clientID)
	f.propose(t, project.ID, first, 100)
	f.propose(t, project.ID, second, 200)

	owner, err := f.proposals.ListForProject(ctx, project.ID, clientID, models.RoleClient, models.Pagination{})
	require.NoError(t, err)
	require.Equal(t, 2, owner.Total)
	assert.Equal(t, first, owner.Items[0].ArtisanID, "oldest first")

	own, err := f.proposals.ListForProject(ctx, project.ID, second, models.RoleArtisan, models.Pagination{})
	require.NoError(t, err)
	require.Equal(t, 1, own.Total)
	assert.Equal(t, second, own.Items[0].ArtisanID)

	_, err = f.proposals.ListForProject(ctx, project.ID, uuid.New(), models.RoleClient, models.Pagination{})
	assertCode(t, apperrors.CodeProjectForbidden, err)

	mine, err := f.proposals.ListForArtisan(ctx, first, models.Pagination{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, models.ProjectStatusOpen, mine.Items[0].ProjectStatus)
	assert.False(t, mine.Items[0].IsAccepted)

	count, err := promtest.GatherAndCount(f.metrics.Registry(), "artisan_marketplace_proposals_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
