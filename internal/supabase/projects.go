package supabase

import (
	"context"

	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
)

const projectColumns = `
	p.id, p.client_id, p.generated_image_id, p.category_id, p.material_id, p.status,
	p.dimensions, p.budget, p.accepted_proposal_id, p.accepted_price, p.created_at, p.updated_at`

const projectDetailsQuery = `SELECT` + projectColumns + `,
	gi.image_url, c.name AS category_name, m.name AS material_name,
	COALESCE(pc.proposals_count, 0) AS proposals_count
	FROM projects p
	JOIN generated_images gi ON gi.id = p.generated_image_id
	JOIN categories c ON c.id = p.category_id
	JOIN materials m ON m.id = p.material_id
	LEFT JOIN (
		SELECT project_id, COUNT(*) AS proposals_count FROM proposals GROUP BY project_id
	) pc ON pc.project_id = p.id`

func (d *DatabaseClient) CreateProject(ctx context.Context, project *models.Project) error {
	err := d.db.QueryRowxContext(ctx, `
		INSERT INTO projects (client_id, generated_image_id, category_id, material_id, dimensions, budget)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at, updated_at
	`, project.ClientID, project.GeneratedImageID, project.CategoryID, project.MaterialID,
		project.Dimensions, project.Budget,
	).Scan(&project.ID, &project.Status, &project.CreatedAt, &project.UpdatedAt)
	return mapError("create project", err)
}

func (d *DatabaseClient) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := d.db.GetContext(ctx, &project, `SELECT`+projectColumns+` FROM projects p WHERE p.id = $1`, id)
	if err != nil {
		return nil, mapError("get project", err)
	}
	return &project, nil
}

func (d *DatabaseClient) GetProjectDetails(ctx context.Context, id uuid.UUID) (*models.ProjectDetails, error) {
	var project models.ProjectDetails
	err := d.db.GetContext(ctx, &project, projectDetailsQuery+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, mapError("get project details", err)
	}
	return &project, nil
}

func projectWhere(filter models.ProjectFilter) *whereClause {
	w := &whereClause{}
	if filter.Status != "" {
		w.add("p.status = $%d", filter.Status)
	}
	if filter.CategoryID > 0 {
		w.add("p.category_id = $%d", filter.CategoryID)
	}
	if filter.MaterialID > 0 {
		w.add("p.material_id = $%d", filter.MaterialID)
	}
	if filter.ClientID != nil {
		w.add("p.client_id = $%d", *filter.ClientID)
	}
	return w
}

func (d *DatabaseClient) ListProjects(ctx context.Context, filter models.ProjectFilter) ([]models.ProjectDetails, error) {
	p := filter.Pagination.Normalize()
	w := projectWhere(filter)
	limit, args := w.page(p.Limit, p.Offset())

	projects := []models.ProjectDetails{}
	err := d.db.SelectContext(ctx, &projects, projectDetailsQuery+w.String()+` ORDER BY p.created_at DESC`+limit, args...)
	if err != nil {
		return nil, mapError("list projects", err)
	}
	return projects, nil
}

func (d *DatabaseClient) CountProjects(ctx context.Context, filter models.ProjectFilter) (int, error) {
	w := projectWhere(filter)
	var total int
	err := d.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM projects p`+w.String(), w.args...)
	return total, mapError("count projects", err)
}

// UpdateProjectStatus moves a project from one status to another. It returns
// store.ErrStale when the project is no longer in the expected status.
func (d *DatabaseClient) UpdateProjectStatus(ctx context.Context, id uuid.UUID, from, to models.ProjectStatus) (*models.Project, error) {
	var project models.Project
	err := d.db.GetContext(ctx, &project, `
		UPDATE projects p SET status = $3, updated_at = NOW()
		WHERE p.id = $1 AND p.status = $2
		RETURNING`+projectColumns, id, from, to)
	if err != nil {
		err = mapError("update project status", err)
		if err == store.ErrNotFound {
			return nil, store.ErrStale
		}
		return nil, err
	}
	return &project, nil
}

// AcceptProposal moves an open project to in_progress and copies the
// proposal's current price in the same statement. It returns store.ErrStale
// when the project is not open or the proposal does not belong to it.
func (d *DatabaseClient) AcceptProposal(ctx context.Context, projectID, proposalID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := d.db.GetContext(ctx, &project, `
		UPDATE projects p
		SET status = 'in_progress', accepted_proposal_id = pr.id, accepted_price = pr.price, updated_at = NOW()
		FROM proposals pr
		WHERE p.id = $1 AND pr.id = $2 AND pr.project_id = p.id AND p.status = 'open'
		RETURNING`+projectColumns, projectID, proposalID)
	if err != nil {
		err = mapError("accept proposal", err)
		if err == store.ErrNotFound {
			return nil, store.ErrStale
		}
		return nil, err
	}
	return &project, nil
}
