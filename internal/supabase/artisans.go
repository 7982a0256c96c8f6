package supabase

import (
	"context"
	"database/sql"
	"fmt"

	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const artisanColumns = `ap.user_id, ap.company_name, ap.nip, ap.is_public, ap.created_at, ap.updated_at`

func (d *DatabaseClient) GetArtisanProfile(ctx context.Context, userID uuid.UUID) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	err := d.db.GetContext(ctx, &profile, `SELECT `+artisanColumns+` FROM artisan_profiles ap WHERE ap.user_id = $1`, userID)
	if err != nil {
		return nil, mapError("get artisan profile", err)
	}

	if profile.Specializations, err = d.listArtisanSpecializations(ctx, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (d *DatabaseClient) listArtisanSpecializations(ctx context.Context, userID uuid.UUID) ([]models.Specialization, error) {
	specs := []models.Specialization{}
	err := d.db.SelectContext(ctx, &specs, `
		SELECT s.id, s.name, s.slug
		FROM artisan_specializations aps
		JOIN specializations s ON s.id = aps.specialization_id
		WHERE aps.artisan_id = $1
		ORDER BY s.name
	`, userID)
	if err != nil {
		return nil, mapError("list artisan specializations", err)
	}
	return specs, nil
}

// FindNIPOwner returns the user holding nip, or store.ErrNotFound.
func (d *DatabaseClient) FindNIPOwner(ctx context.Context, nip string) (uuid.UUID, error) {
	var owner uuid.UUID
	err := d.db.GetContext(ctx, &owner, `SELECT user_id FROM artisan_profiles WHERE nip = $1`, nip)
	return owner, mapError("find nip owner", err)
}

// UpsertArtisanProfile creates or updates the profile keyed by user id.
// Visibility is left untouched on update.
func (d *DatabaseClient) UpsertArtisanProfile(ctx context.Context, profile *models.ArtisanProfile) error {
	err := d.db.QueryRowxContext(ctx, `
		INSERT INTO artisan_profiles (user_id, company_name, nip)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET company_name = EXCLUDED.company_name, nip = EXCLUDED.nip, updated_at = NOW()
		RETURNING is_public, created_at, updated_at
	`, profile.UserID, profile.CompanyName, profile.NIP,
	).Scan(&profile.IsPublic, &profile.CreatedAt, &profile.UpdatedAt)
	return mapError("upsert artisan profile", err)
}

// ReplaceSpecializations makes ids the artisan's exact specialization set.
// Unknown ids fail with store.ErrReference before anything is written.
func (d *DatabaseClient) ReplaceSpecializations(ctx context.Context, userID uuid.UUID, ids []int64) error {
	// A nil slice binds as NULL, and ANY(NULL) matches nothing.
	set := pq.Array(append([]int64{}, ids...))

	if len(ids) > 0 {
		var known int
		if err := d.db.GetContext(ctx, &known, `SELECT COUNT(*) FROM specializations WHERE id = ANY($1)`, set); err != nil {
			return mapError("check specializations", err)
		}
		if known != len(ids) {
			return fmt.Errorf("replace specializations: %w", store.ErrReference)
		}
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapError("begin specializations update", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM artisan_specializations
		WHERE artisan_id = $1 AND NOT (specialization_id = ANY($2))
	`, userID, set); err != nil {
		return mapError("remove specializations", err)
	}

	if len(ids) > 0 {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO artisan_specializations (artisan_id, specialization_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING
		`, userID, set); err != nil {
			return mapError("add specializations", err)
		}
	}

	return mapError("commit specializations", tx.Commit())
}

func (d *DatabaseClient) SetArtisanVisibility(ctx context.Context, userID uuid.UUID, isPublic bool) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	err := d.db.GetContext(ctx, &profile, `
		UPDATE artisan_profiles ap SET is_public = $2, updated_at = NOW()
		WHERE ap.user_id = $1
		RETURNING `+artisanColumns, userID, isPublic)
	if err != nil {
		return nil, mapError("set artisan visibility", err)
	}

	if profile.Specializations, err = d.listArtisanSpecializations(ctx, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func publicArtisanWhere(filter models.ArtisanFilter) *whereClause {
	w := &whereClause{}
	w.add("ap.is_public = $%d", true)
	if filter.SpecializationID > 0 {
		w.add(`EXISTS (SELECT 1 FROM artisan_specializations aps
			WHERE aps.artisan_id = ap.user_id AND aps.specialization_id = $%d)`, filter.SpecializationID)
	}
	return w
}

func (d *DatabaseClient) ListPublicArtisans(ctx context.Context, filter models.ArtisanFilter) ([]models.ArtisanSummary, error) {
	p := filter.Pagination.Normalize()
	w := publicArtisanWhere(filter)
	limit, args := w.page(p.Limit, p.Offset())

	artisans := []models.ArtisanSummary{}
	err := d.db.SelectContext(ctx, &artisans, `
		SELECT ap.user_id, ap.company_name,
			(SELECT COUNT(*) FROM portfolio_images pi WHERE pi.artisan_id = ap.user_id) AS portfolio_count,
			r.average_rating,
			COALESCE(r.reviews_count, 0) AS reviews_count
		FROM artisan_profiles ap
		LEFT JOIN (
			SELECT reviewee_id, AVG(rating)::float8 AS average_rating, COUNT(*) AS reviews_count
			FROM reviews GROUP BY reviewee_id
		) r ON r.reviewee_id = ap.user_id`+w.String()+`
		ORDER BY ap.company_name`+limit, args...)
	if err != nil {
		return nil, mapError("list public artisans", err)
	}
	return artisans, nil
}

func (d *DatabaseClient) CountPublicArtisans(ctx context.Context, filter models.ArtisanFilter) (int, error) {
	w := publicArtisanWhere(filter)
	var total int
	err := d.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM artisan_profiles ap`+w.String(), w.args...)
	return total, mapError("count public artisans", err)
}

func (d *DatabaseClient) CreatePortfolioImage(ctx context.Context, img *models.PortfolioImage) error {
	err := d.db.QueryRowxContext(ctx, `
		INSERT INTO portfolio_images (artisan_id, image_url, storage_path)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, img.ArtisanID, img.ImageURL, img.StoragePath).Scan(&img.ID, &img.CreatedAt)
	return mapError("create portfolio image", err)
}

func (d *DatabaseClient) GetPortfolioImage(ctx context.Context, id uuid.UUID) (*models.PortfolioImage, error) {
	var img models.PortfolioImage
	err := d.db.GetContext(ctx, &img, `
		SELECT id, artisan_id, image_url, storage_path, created_at FROM portfolio_images WHERE id = $1
	`, id)
	if err != nil {
		return nil, mapError("get portfolio image", err)
	}
	return &img, nil
}

func (d *DatabaseClient) ListPortfolioImages(ctx context.Context, artisanID uuid.UUID) ([]models.PortfolioImage, error) {
	images := []models.PortfolioImage{}
	err := d.db.SelectContext(ctx, &images, `
		SELECT id, artisan_id, image_url, storage_path, created_at
		FROM portfolio_images
		WHERE artisan_id = $1
		ORDER BY created_at
	`, artisanID)
	if err != nil {
		return nil, mapError("list portfolio images", err)
	}
	return images, nil
}

func (d *DatabaseClient) CountPortfolioImages(ctx context.Context, artisanID uuid.UUID) (int, error) {
	var total int
	err := d.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM portfolio_images WHERE artisan_id = $1`, artisanID)
	return total, mapError("count portfolio images", err)
}

func (d *DatabaseClient) DeletePortfolioImage(ctx context.Context, id uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM portfolio_images WHERE id = $1`, id)
	if err != nil {
		return mapError("delete portfolio image", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapError("delete portfolio image", sql.ErrNoRows)
	}
	return nil
}
