package supabase

import (
	"context"

	"artisan-marketplace-backend/internal/models"
	"github.com/google/uuid"
)

const proposalColumns = `
	pr.id, pr.project_id, pr.artisan_id, pr.price, pr.message, pr.attachment_url, pr.attachment_path, pr.created_at`

const proposalDetailsQuery = `SELECT` + proposalColumns + `,
	ap.company_name, p.status AS project_status,
	COALESCE(p.accepted_proposal_id = pr.id, FALSE) AS is_accepted
	FROM proposals pr
	JOIN projects p ON p.id = pr.project_id
	LEFT JOIN artisan_profiles ap ON ap.user_id = pr.artisan_id`

func (d *DatabaseClient) CreateProposal(ctx context.Context, proposal *models.Proposal) error {
	err := d.db.QueryRowxContext(ctx, `
		INSERT INTO proposals (project_id, artisan_id, price, message, attachment_url, attachment_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, proposal.ProjectID, proposal.ArtisanID, proposal.Price, proposal.Message,
		proposal.AttachmentURL, proposal.AttachmentPath,
	).Scan(&proposal.ID, &proposal.CreatedAt)
	return mapError("create proposal", err)
}

func (d *DatabaseClient) GetProposal(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	err := d.db.GetContext(ctx, &proposal, `SELECT`+proposalColumns+` FROM proposals pr WHERE pr.id = $1`, id)
	if err != nil {
		return nil, mapError("get proposal", err)
	}
	return &proposal, nil
}

func (d *DatabaseClient) HasProposal(ctx context.Context, projectID, artisanID uuid.UUID) (bool, error) {
	var exists bool
	err := d.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM proposals WHERE project_id = $1 AND artisan_id = $2)
	`, projectID, artisanID)
	return exists, mapError("check proposal", err)
}

func proposalsForProjectWhere(projectID uuid.UUID, artisanID *uuid.UUID) *whereClause {
	w := &whereClause{}
	w.add("pr.project_id = $%d", projectID)
	if artisanID != nil {
		w.add("pr.artisan_id = $%d", *artisanID)
	}
	return w
}

// ListProposalsForProject lists a project's proposals, optionally narrowed to
// one artisan.
func (d *DatabaseClient) ListProposalsForProject(ctx context.Context, projectID uuid.UUID, artisanID *uuid.UUID, p models.Pagination) ([]models.ProposalDetails, error) {
	p = p.Normalize()
	w := proposalsForProjectWhere(projectID, artisanID)
	limit, args := w.page(p.Limit, p.Offset())

	proposals := []models.ProposalDetails{}
	err := d.db.SelectContext(ctx, &proposals, proposalDetailsQuery+w.String()+` ORDER BY pr.created_at ASC`+limit, args...)
	if err != nil {
		return nil, mapError("list project proposals", err)
	}
	return proposals, nil
}

func (d *DatabaseClient) CountProposalsForProject(ctx context.Context, projectID uuid.UUID, artisanID *uuid.UUID) (int, error) {
	w := proposalsForProjectWhere(projectID, artisanID)
	var total int
	err := d.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM proposals pr`+w.String(), w.args...)
	return total, mapError("count project proposals", err)
}

func (d *DatabaseClient) ListProposalsByArtisan(ctx context.Context, artisanID uuid.UUID, p models.Pagination) ([]models.ProposalDetails, error) {
	p = p.Normalize()
	proposals := []models.ProposalDetails{}
	err := d.db.SelectContext(ctx, &proposals, proposalDetailsQuery+`
		WHERE pr.artisan_id = $1
		ORDER BY pr.created_at DESC
		LIMIT $2 OFFSET $3
	`, artisanID, p.Limit, p.Offset())
	if err != nil {
		return nil, mapError("list artisan proposals", err)
	}
	return proposals, nil
}

func (d *DatabaseClient) CountProposalsByArtisan(ctx context.Context, artisanID uuid.UUID) (int, error) {
	var total int
	err := d.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM proposals WHERE artisan_id = $1`, artisanID)
	return total, mapError("count artisan proposals", err)
}
