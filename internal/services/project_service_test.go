package services_test

import (
	"context"
	"testing"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	f := newFixture(t)
	clientID := uuid.New()

	project := f.openProject(t, clientID)
	assert.Equal(t, models.ProjectStatusOpen, project.Status)
	assert.Nil(t, project.AcceptedProposalID)
	assert.Equal(t, "Tables", project.CategoryName)
	assert.Equal(t, "Oak", project.MaterialName)
	assert.NotEmpty(t, project.ImageURL)
}

func TestCreateProjectRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clientID := uuid.New()

	img, err := f.images.Generate(ctx, clientID, models.RoleClient, "Walnut bookshelf")
	require.NoError(t, err)
	req := models.CreateProjectRequest{GeneratedImageID: img.ID.String(), CategoryID: 1, MaterialID: 1}

	_, err = f.projects.Create(ctx, clientID, models.RoleArtisan, req)
	assertCode(t, apperrors.CodeClientRoleRequired, err)

	_, err = f.projects.Create(ctx, uuid.New(), models.RoleClient, req)
	assertCode(t, apperrors.CodeImageForbidden, err)

	_, err = f.projects.Create(ctx, clientID, models.RoleClient, models.CreateProjectRequest{
		GeneratedImageID: uuid.NewString(), CategoryID: 1, MaterialID: 1,
	})
	assertCode(t, apperrors.CodeImageNotFound, err)

	_, err = f.projects.Create(ctx, clientID, models.RoleClient, models.CreateProjectRequest{
		GeneratedImageID: img.ID.String(), CategoryID: 99, MaterialID: 1,
	})
	assertCode(t, apperrors.CodeInvalidRequest, err)

	_, err = f.projects.Create(ctx, clientID, models.RoleClient, req)
	require.NoError(t, err)
	_, err = f.projects.Create(ctx, clientID, models.RoleClient, req)
	assertCode(t, apperrors.CodeImageAlreadyUsed, err)
}

func TestUpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clientID := uuid.New()
	project := f.openProject(t, clientID)

	_, err := f.projects.UpdateStatus(ctx, project.ID, clientID, models.ProjectStatusInProgress)
	assertCode(t, apperrors.CodeInvalidStatusTransition, err)

	_, err = f.projects.UpdateStatus(ctx, project.ID, clientID, models.ProjectStatusCompleted)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatusTransition, appErr.Code)
	assert.Equal(t, map[string]string{"From": "open", "To": "completed"}, appErr.Metadata)

	_, err = f.projects.UpdateStatus(ctx, project.ID, uuid.New(), models.ProjectStatusClosed)
	assertCode(t, apperrors.CodeProjectForbidden, err)

	same, err := f.projects.UpdateStatus(ctx, project.ID, clientID, models.ProjectStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusOpen, same.Status)

	closed, err := f.projects.UpdateStatus(ctx, project.ID, clientID, models.ProjectStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusClosed, closed.Status)

	_, err = f.projects.UpdateStatus(ctx, project.ID, clientID, models.ProjectStatusOpen)
	assertCode(t, apperrors.CodeInvalidStatusTransition, err)

	_, err = f.projects.UpdateStatus(ctx, uuid.New(), clientID, models.ProjectStatusClosed)
	assertCode(t, apperrors.CodeProjectNotFound, err)
}

func TestAcceptProposalFreezesPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clientID, artisanID := uuid.New(), uuid.New()
	project := f.openProject(t, clientID)
	proposal := f.propose(t, project.ID, artisanID, 4200)

	_, err := f.projects.AcceptProposal(ctx, project.ID, artisanID, proposal.ID)
	assertCode(t, apperrors.CodeProjectForbidden, err)

	_, err = f.projects.AcceptProposal(ctx, project.ID, clientID, uuid.New())
	assertCode(t, apperrors.CodeProposalNotFound, err)

	accepted, err := f.projects.AcceptProposal(ctx, project.ID, clientID, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusInProgress, accepted.Status)
	require.NotNil(t, accepted.AcceptedProposalID)
	assert.Equal(t, proposal.ID, *accepted.AcceptedProposalID)
	require.NotNil(t, accepted.AcceptedPrice)
	assert.Equal(t, 4200.0, *accepted.AcceptedPrice)

	f.store.SetProposalPrice(proposal.ID, 9999)
	stored, err := f.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 4200.0, *stored.AcceptedPrice)

	_, err = f.projects.AcceptProposal(ctx, project.ID, clientID, proposal.ID)
	assertCode(t, apperrors.CodeProjectNotOpen, err)
}

func TestAcceptProposalFromAnotherProject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clientID, artisanID := uuid.New(), uuid.New()
	first := f.openProject(t, clientID)
	second := f.openProject(t, clientID)
	foreign := f.propose(t, second.ID, artisanID, 100)

	_, err := f.projects.AcceptProposal(ctx, first.ID, clientID, foreign.ID)
	assertCode(t, apperrors.CodeProposalNotFound, err)
}

func TestListProjectsFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob := uuid.New(), uuid.New()
	first := f.openProject(t, alice)
	f.openProject(t, alice)
	f.openProject(t, bob)

	_, err := f.projects.UpdateStatus(ctx, first.ID, alice, models.ProjectStatusClosed)
	require.NoError(t, err)

	open, err := f.projects.List(ctx, models.ProjectFilter{Status: models.ProjectStatusOpen})
	require.NoError(t, err)
	assert.Equal(t, 2, open.Total)

	mine, err := f.projects.ListForClient(ctx, alice, models.ProjectFilter{Pagination: models.Pagination{Page: 1, Limit: 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Total)
	assert.Equal(t, 2, mine.TotalPages)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, alice, mine.Items[0].ClientID)
}
