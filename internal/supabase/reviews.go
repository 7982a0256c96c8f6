package supabase

import (
	"context"

	"artisan-marketplace-backend/internal/models"
	"github.com/google/uuid"
)

func (d *DatabaseClient) CreateReview(ctx context.Context, review *models.Review) error {
	err := d.db.QueryRowxContext(ctx, `
		INSERT INTO reviews (project_id, reviewer_id, reviewee_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, review.ProjectID, review.ReviewerID, review.RevieweeID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	return mapError("create review", err)
}

func (d *DatabaseClient) HasReview(ctx context.Context, projectID, reviewerID uuid.UUID) (bool, error) {
	var exists bool
	err := d.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE project_id = $1 AND reviewer_id = $2)
	`, projectID, reviewerID)
	return exists, mapError("check review", err)
}

func (d *DatabaseClient) ListReviewsForUser(ctx context.Context, revieweeID uuid.UUID, p models.Pagination) ([]models.Review, error) {
	p = p.Normalize()
	reviews := []models.Review{}
	err := d.db.SelectContext(ctx, &reviews, `
		SELECT id, project_id, reviewer_id, reviewee_id, rating, comment, created_at
		FROM reviews
		WHERE reviewee_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, revieweeID, p.Limit, p.Offset())
	if err != nil {
		return nil, mapError("list reviews", err)
	}
	return reviews, nil
}

func (d *DatabaseClient) CountReviewsForUser(ctx context.Context, revieweeID uuid.UUID) (int, error) {
	var total int
	err := d.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reviews WHERE reviewee_id = $1`, revieweeID)
	return total, mapError("count reviews", err)
}

func (d *DatabaseClient) GetRatingSummary(ctx context.Context, revieweeID uuid.UUID) (models.RatingSummary, error) {
	var summary models.RatingSummary
	err := d.db.GetContext(ctx, &summary, `
		SELECT COALESCE(AVG(rating), 0)::float8 AS average, COUNT(*) AS count
		FROM reviews
		WHERE reviewee_id = $1
	`, revieweeID)
	return summary, mapError("get rating summary", err)
}
