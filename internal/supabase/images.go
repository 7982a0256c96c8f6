package supabase

import (
	"context"

	"artisan-marketplace-backend/internal/models"
	"github.com/google/uuid"
)

const generatedImageColumns = `
	gi.id, gi.user_id, gi.prompt, gi.enhanced_prompt, gi.title, gi.image_url, gi.storage_path, gi.created_at,
	EXISTS (SELECT 1 FROM projects p WHERE p.generated_image_id = gi.id) AS used`

func (d *DatabaseClient) CreateGeneratedImage(ctx context.Context, img *models.GeneratedImage) error {
	err := d.db.QueryRowxContext(ctx, `
		INSERT INTO generated_images (user_id, prompt, enhanced_prompt, title, image_url, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, img.UserID, img.Prompt, img.EnhancedPrompt, img.Title, img.ImageURL, img.StoragePath,
	).Scan(&img.ID, &img.CreatedAt)
	return mapError("create generated image", err)
}

func (d *DatabaseClient) GetGeneratedImage(ctx context.Context, id uuid.UUID) (*models.GeneratedImage, error) {
	var img models.GeneratedImage
	err := d.db.GetContext(ctx, &img, `SELECT`+generatedImageColumns+`
		FROM generated_images gi
		WHERE gi.id = $1
	`, id)
	if err != nil {
		return nil, mapError("get generated image", err)
	}
	return &img, nil
}

func (d *DatabaseClient) ListGeneratedImages(ctx context.Context, userID uuid.UUID, p models.Pagination) ([]models.GeneratedImage, error) {
	p = p.Normalize()
	images := []models.GeneratedImage{}
	err := d.db.SelectContext(ctx, &images, `SELECT`+generatedImageColumns+`
		FROM generated_images gi
		WHERE gi.user_id = $1
		ORDER BY gi.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, mapError("list generated images", err)
	}
	return images, nil
}

func (d *DatabaseClient) CountGeneratedImages(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := d.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM generated_images WHERE user_id = $1`, userID)
	return total, mapError("count generated images", err)
}
