package supabase_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"artisan-marketplace-backend/internal/supabase"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var projectRowColumns = []string{
	"id", "client_id", "generated_image_id", "category_id", "material_id", "status",
	"dimensions", "budget", "accepted_proposal_id", "accepted_price", "created_at", "updated_at",
}

func newMockClient(t *testing.T) (*supabase.DatabaseClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return supabase.NewDatabaseClientFromDB(sqlx.NewDb(db, "postgres")), mock
}

func TestCreateProposal_UniqueViolation(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO proposals")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "proposals_project_artisan_key"})

	err := client.CreateProposal(context.Background(), &models.Proposal{
		ProjectID: uuid.New(),
		ArtisanID: uuid.New(),
		Price:     2500,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Contains(t, err.Error(), "proposals_project_artisan_key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProject_NotFound(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects p WHERE p.id = $1")).
		WillReturnRows(sqlmock.NewRows(projectRowColumns))

	_, err := client.GetProject(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptProposal_CopiesPrice(t *testing.T) {
	client, mock := newMockClient(t)
	projectID, proposalID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("accepted_price = pr.price")).
		WithArgs(projectID, proposalID).
		WillReturnRows(sqlmock.NewRows(projectRowColumns).AddRow(
			projectID.String(), uuid.NewString(), uuid.NewString(), 1, 2, "in_progress",
			nil, nil, proposalID.String(), "2500.00", now, now,
		))

	project, err := client.AcceptProposal(context.Background(), projectID, proposalID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusInProgress, project.Status)
	require.NotNil(t, project.AcceptedProposalID)
	assert.Equal(t, proposalID, *project.AcceptedProposalID)
	require.NotNil(t, project.AcceptedPrice)
	assert.Equal(t, 2500.0, *project.AcceptedPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptProposal_NotOpenIsStale(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("p.status = 'open'")).
		WillReturnRows(sqlmock.NewRows(projectRowColumns))

	_, err := client.AcceptProposal(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrStale)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectStatus_ComparesCurrentStatus(t *testing.T) {
	client, mock := newMockClient(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1 AND p.status = $2")).
		WithArgs(id, "in_progress", "completed").
		WillReturnRows(sqlmock.NewRows(projectRowColumns))

	_, err := client.UpdateProjectStatus(context.Background(), id, models.ProjectStatusInProgress, models.ProjectStatusCompleted)
	assert.ErrorIs(t, err, store.ErrStale)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProjects_AppliesFiltersAndPage(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.status = $1 AND p.category_id = $2 ORDER BY p.created_at DESC LIMIT $3 OFFSET $4")).
		WithArgs("open", int64(3), 10, 10).
		WillReturnRows(sqlmock.NewRows(append(projectRowColumns,
			"image_url", "category_name", "material_name", "proposals_count")))

	projects, err := client.ListProjects(context.Background(), models.ProjectFilter{
		Status:     models.ProjectStatusOpen,
		CategoryID: 3,
		Pagination: models.Pagination{Page: 2, Limit: 10},
	})
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountProjects(t *testing.T) {
	client, mock := newMockClient(t)
	clientID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects p WHERE p.client_id = $1")).
		WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := client.CountProjects(context.Background(), models.ProjectFilter{ClientID: &clientID})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestFindNIPOwner(t *testing.T) {
	client, mock := newMockClient(t)
	owner := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM artisan_profiles WHERE nip = $1")).
		WithArgs("5260250274").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(owner.String()))

	got, err := client.FindNIPOwner(context.Background(), "5260250274")
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestDeletePortfolioImage_Missing(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM portfolio_images")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := client.DeletePortfolioImage(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRatingSummary(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("AVG(rating)")).
		WillReturnRows(sqlmock.NewRows([]string{"average", "count"}).AddRow(4.5, 2))

	summary, err := client.GetRatingSummary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Average: 4.5, Count: 2}, summary)
}

func TestReplaceSpecializations_EmptyClearsSet(t *testing.T) {
	client, mock := newMockClient(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM artisan_specializations")).
		WithArgs(userID, "{}").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, client.ReplaceSpecializations(context.Background(), userID, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSpecializations_ReplacesSet(t *testing.T) {
	client, mock := newMockClient(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM specializations WHERE id = ANY($1)")).
		WithArgs("{1,2}").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM artisan_specializations")).
		WithArgs(userID, "{1,2}").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO artisan_specializations")).
		WithArgs(userID, "{1,2}").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, client.ReplaceSpecializations(context.Background(), userID, []int64{1, 2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSpecializations_UnknownIDWritesNothing(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM specializations")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := client.ReplaceSpecializations(context.Background(), uuid.New(), []int64{1, 99})
	assert.ErrorIs(t, err, store.ErrReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}
