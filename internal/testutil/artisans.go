package testutil

import (
	"context"
	"sort"

	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
)

func (m *MemoryStore) specializationsOf(userID uuid.UUID) []models.Specialization {
	out := []models.Specialization{}
	for _, id := range m.specs[userID] {
		for _, s := range m.Specializations {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *MemoryStore) GetArtisanProfile(_ context.Context, userID uuid.UUID) (*models.ArtisanProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *p
	out.Specializations = m.specializationsOf(userID)
	return &out, nil
}

func (m *MemoryStore) FindNIPOwner(_ context.Context, nip string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.NIP == nip {
			return p.UserID, nil
		}
	}
	return uuid.Nil, store.ErrNotFound
}

func (m *MemoryStore) UpsertArtisanProfile(_ context.Context, profile *models.ArtisanProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.NIP == profile.NIP && p.UserID != profile.UserID {
			return store.ErrConflict
		}
	}
	now := m.tick()
	if existing, ok := m.profiles[profile.UserID]; ok {
		existing.CompanyName = profile.CompanyName
		existing.NIP = profile.NIP
		existing.UpdatedAt = now
		profile.IsPublic = existing.IsPublic
		profile.CreatedAt = existing.CreatedAt
		profile.UpdatedAt = now
		return nil
	}
	profile.IsPublic = false
	profile.CreatedAt = now
	profile.UpdatedAt = now
	stored := *profile
	stored.Specializations = nil
	m.profiles[profile.UserID] = &stored
	return nil
}

func (m *MemoryStore) ReplaceSpecializations(_ context.Context, userID uuid.UUID, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		known := false
		for _, s := range m.Specializations {
			known = known || s.ID == id
		}
		if !known {
			return store.ErrReference
		}
	}
	m.specs[userID] = append([]int64{}, ids...)
	return nil
}

func (m *MemoryStore) SetArtisanVisibility(_ context.Context, userID uuid.UUID, isPublic bool) (*models.ArtisanProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.IsPublic = isPublic
	p.UpdatedAt = m.tick()
	out := *p
	out.Specializations = m.specializationsOf(userID)
	return &out, nil
}

func (m *MemoryStore) publicArtisans(filter models.ArtisanFilter) []models.ArtisanSummary {
	var out []models.ArtisanSummary
	for _, p := range m.profiles {
		if !p.IsPublic {
			continue
		}
		if filter.SpecializationID > 0 {
			has := false
			for _, id := range m.specs[p.UserID] {
				has = has || id == filter.SpecializationID
			}
			if !has {
				continue
			}
		}
		summary := models.ArtisanSummary{UserID: p.UserID, CompanyName: p.CompanyName}
		for _, img := range m.portfolio {
			if img.ArtisanID == p.UserID {
				summary.PortfolioCount++
			}
		}
		rating := m.rating(p.UserID)
		summary.ReviewsCount = rating.Count
		if rating.Count > 0 {
			avg := rating.Average
			summary.AverageRating = &avg
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
	return out
}

func (m *MemoryStore) ListPublicArtisans(_ context.Context, filter models.ArtisanFilter) ([]models.ArtisanSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return paginate(m.publicArtisans(filter), filter.Pagination), nil
}

func (m *MemoryStore) CountPublicArtisans(_ context.Context, filter models.ArtisanFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.publicArtisans(filter)), nil
}

// Portfolio

func (m *MemoryStore) CreatePortfolioImage(_ context.Context, img *models.PortfolioImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[img.ArtisanID]; !ok {
		return store.ErrReference
	}
	img.ID = uuid.New()
	img.CreatedAt = m.tick()
	stored := *img
	m.portfolio[img.ID] = &stored
	return nil
}

func (m *MemoryStore) GetPortfolioImage(_ context.Context, id uuid.UUID) (*models.PortfolioImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.portfolio[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *img
	return &out, nil
}

func (m *MemoryStore) portfolioOf(artisanID uuid.UUID) []models.PortfolioImage {
	out := []models.PortfolioImage{}
	for _, img := range m.portfolio {
		if img.ArtisanID == artisanID {
			out = append(out, *img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *MemoryStore) ListPortfolioImages(_ context.Context, artisanID uuid.UUID) ([]models.PortfolioImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.portfolioOf(artisanID), nil
}

func (m *MemoryStore) CountPortfolioImages(_ context.Context, artisanID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.portfolioOf(artisanID)), nil
}

func (m *MemoryStore) DeletePortfolioImage(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.portfolio[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.portfolio, id)
	return nil
}

// Reviews

func (m *MemoryStore) CreateReview(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ProjectID == review.ProjectID && r.ReviewerID == review.ReviewerID {
			return store.ErrConflict
		}
	}
	review.ID = uuid.New()
	review.CreatedAt = m.tick()
	stored := *review
	m.reviews[review.ID] = &stored
	return nil
}

func (m *MemoryStore) HasReview(_ context.Context, projectID, reviewerID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ProjectID == projectID && r.ReviewerID == reviewerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) reviewsFor(revieweeID uuid.UUID) []models.Review {
	var out []models.Review
	for _, r := range m.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *MemoryStore) rating(revieweeID uuid.UUID) models.RatingSummary {
	reviews := m.reviewsFor(revieweeID)
	if len(reviews) == 0 {
		return models.RatingSummary{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return models.RatingSummary{Average: float64(sum) / float64(len(reviews)), Count: len(reviews)}
}

func (m *MemoryStore) ListReviewsForUser(_ context.Context, revieweeID uuid.UUID, p models.Pagination) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return paginate(m.reviewsFor(revieweeID), p), nil
}

func (m *MemoryStore) CountReviewsForUser(_ context.Context, revieweeID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reviewsFor(revieweeID)), nil
}

func (m *MemoryStore) GetRatingSummary(_ context.Context, revieweeID uuid.UUID) (models.RatingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rating(revieweeID), nil
}
