// Package testutil provides in-memory stand-ins for the database, object
// storage and AI collaborators.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
)

// MemoryStore implements every store interface the services consume and
// enforces the same unique constraints as the schema.
type MemoryStore struct {
	mu sync.Mutex

	Roles           map[uuid.UUID]models.Role
	Categories      []models.Category
	Materials       []models.Material
	Specializations []models.Specialization

	images    map[uuid.UUID]*models.GeneratedImage
	projects  map[uuid.UUID]*models.Project
	proposals map[uuid.UUID]*models.Proposal
	profiles  map[uuid.UUID]*models.ArtisanProfile
	specs     map[uuid.UUID][]int64
	portfolio map[uuid.UUID]*models.PortfolioImage
	reviews   map[uuid.UUID]*models.Review
	clock     time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Roles: map[uuid.UUID]models.Role{},
		Categories: []models.Category{
			{ID: 1, Name: "Tables", Slug: "tables"},
			{ID: 2, Name: "Chairs", Slug: "chairs"},
		},
		Materials: []models.Material{
			{ID: 1, Name: "Oak", Slug: "oak"},
			{ID: 2, Name: "Walnut", Slug: "walnut"},
		},
		Specializations: []models.Specialization{
			{ID: 1, Name: "Carpentry", Slug: "carpentry"},
			{ID: 2, Name: "Upholstery", Slug: "upholstery"},
		},
		images:    map[uuid.UUID]*models.GeneratedImage{},
		projects:  map[uuid.UUID]*models.Project{},
		proposals: map[uuid.UUID]*models.Proposal{},
		profiles:  map[uuid.UUID]*models.ArtisanProfile{},
		specs:     map[uuid.UUID][]int64{},
		portfolio: map[uuid.UUID]*models.PortfolioImage{},
		reviews:   map[uuid.UUID]*models.Review{},
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so orderings are stable.
func (m *MemoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func paginate[T any](items []T, p models.Pagination) []T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return append([]T{}, items[start:end]...)
}

func (m *MemoryStore) GetUserRole(_ context.Context, userID uuid.UUID) (models.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	role, ok := m.Roles[userID]
	if !ok {
		return "", store.ErrNotFound
	}
	return role, nil
}

func (m *MemoryStore) ListCategories(context.Context) ([]models.Category, error) {
	return append([]models.Category{}, m.Categories...), nil
}

func (m *MemoryStore) ListMaterials(context.Context) ([]models.Material, error) {
	return append([]models.Material{}, m.Materials...), nil
}

func (m *MemoryStore) ListSpecializations(context.Context) ([]models.Specialization, error) {
	return append([]models.Specialization{}, m.Specializations...), nil
}

// Generated images

func (m *MemoryStore) CreateGeneratedImage(_ context.Context, img *models.GeneratedImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	img.ID = uuid.New()
	img.CreatedAt = m.tick()
	stored := *img
	m.images[img.ID] = &stored
	return nil
}

func (m *MemoryStore) imageUsed(id uuid.UUID) bool {
	for _, p := range m.projects {
		if p.GeneratedImageID == id {
			return true
		}
	}
	return false
}

func (m *MemoryStore) GetGeneratedImage(_ context.Context, id uuid.UUID) (*models.GeneratedImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *img
	out.Used = m.imageUsed(id)
	return &out, nil
}

func (m *MemoryStore) userImages(userID uuid.UUID) []models.GeneratedImage {
	var out []models.GeneratedImage
	for _, img := range m.images {
		if img.UserID == userID {
			cp := *img
			cp.Used = m.imageUsed(img.ID)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *MemoryStore) ListGeneratedImages(_ context.Context, userID uuid.UUID, p models.Pagination) ([]models.GeneratedImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return paginate(m.userImages(userID), p), nil
}

func (m *MemoryStore) CountGeneratedImages(_ context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.userImages(userID)), nil
}

// Projects

func (m *MemoryStore) CreateProject(_ context.Context, project *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.imageUsed(project.GeneratedImageID) {
		return store.ErrConflict
	}
	if _, ok := m.images[project.GeneratedImageID]; !ok {
		return store.ErrReference
	}
	if !m.hasCategory(project.CategoryID) || !m.hasMaterial(project.MaterialID) {
		return store.ErrReference
	}
	project.ID = uuid.New()
	project.Status = models.ProjectStatusOpen
	project.CreatedAt = m.tick()
	project.UpdatedAt = project.CreatedAt
	stored := *project
	m.projects[project.ID] = &stored
	return nil
}

func (m *MemoryStore) hasCategory(id int64) bool {
	for _, c := range m.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (m *MemoryStore) hasMaterial(id int64) bool {
	for _, c := range m.Materials {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (m *MemoryStore) GetProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *MemoryStore) details(p *models.Project) models.ProjectDetails {
	d := models.ProjectDetails{Project: *p}
	if img, ok := m.images[p.GeneratedImageID]; ok {
		d.ImageURL = img.ImageURL
	}
	for _, c := range m.Categories {
		if c.ID == p.CategoryID {
			d.CategoryName = c.Name
		}
	}
	for _, mat := range m.Materials {
		if mat.ID == p.MaterialID {
			d.MaterialName = mat.Name
		}
	}
	for _, pr := range m.proposals {
		if pr.ProjectID == p.ID {
			d.ProposalsCount++
		}
	}
	return d
}

func (m *MemoryStore) GetProjectDetails(_ context.Context, id uuid.UUID) (*models.ProjectDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	d := m.details(p)
	return &d, nil
}

func (m *MemoryStore) filterProjects(filter models.ProjectFilter) []models.ProjectDetails {
	var out []models.ProjectDetails
	for _, p := range m.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.CategoryID > 0 && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.MaterialID > 0 && p.MaterialID != filter.MaterialID {
			continue
		}
		if filter.ClientID != nil && p.ClientID != *filter.ClientID {
			continue
		}
		out = append(out, m.details(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *MemoryStore) ListProjects(_ context.Context, filter models.ProjectFilter) ([]models.ProjectDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return paginate(m.filterProjects(filter), filter.Pagination), nil
}

func (m *MemoryStore) CountProjects(_ context.Context, filter models.ProjectFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filterProjects(filter)), nil
}

func (m *MemoryStore) UpdateProjectStatus(_ context.Context, id uuid.UUID, from, to models.ProjectStatus) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok || p.Status != from {
		return nil, store.ErrStale
	}
	p.Status = to
	p.UpdatedAt = m.tick()
	out := *p
	return &out, nil
}

func (m *MemoryStore) AcceptProposal(_ context.Context, projectID, proposalID uuid.UUID) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	pr, prOK := m.proposals[proposalID]
	if !ok || !prOK || pr.ProjectID != projectID || p.Status != models.ProjectStatusOpen {
		return nil, store.ErrStale
	}
	price := pr.Price
	id := pr.ID
	p.Status = models.ProjectStatusInProgress
	p.AcceptedProposalID = &id
	p.AcceptedPrice = &price
	p.UpdatedAt = m.tick()
	out := *p
	return &out, nil
}

// SetProposalPrice rewrites a stored proposal's price, which the API never
// does.
func (m *MemoryStore) SetProposalPrice(id uuid.UUID, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pr, ok := m.proposals[id]; ok {
		pr.Price = price
	}
}

// Proposals

func (m *MemoryStore) CreateProposal(_ context.Context, proposal *models.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pr := range m.proposals {
		if pr.ProjectID == proposal.ProjectID && pr.ArtisanID == proposal.ArtisanID {
			return store.ErrConflict
		}
	}
	proposal.ID = uuid.New()
	proposal.CreatedAt = m.tick()
	stored := *proposal
	m.proposals[proposal.ID] = &stored
	return nil
}

func (m *MemoryStore) GetProposal(_ context.Context, id uuid.UUID) (*models.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pr, ok := m.proposals[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *pr
	return &out, nil
}

func (m *MemoryStore) HasProposal(_ context.Context, projectID, artisanID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pr := range m.proposals {
		if pr.ProjectID == projectID && pr.ArtisanID == artisanID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) proposalDetails(match func(*models.Proposal) bool, newestFirst bool) []models.ProposalDetails {
	var out []models.ProposalDetails
	for _, pr := range m.proposals {
		if !match(pr) {
			continue
		}
		d := models.ProposalDetails{Proposal: *pr}
		if project, ok := m.projects[pr.ProjectID]; ok {
			d.ProjectStatus = project.Status
			d.IsAccepted = project.AcceptedProposalID != nil && *project.AcceptedProposalID == pr.ID
		}
		if profile, ok := m.profiles[pr.ArtisanID]; ok {
			name := profile.CompanyName
			d.CompanyName = &name
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func forProject(projectID uuid.UUID, artisanID *uuid.UUID) func(*models.Proposal) bool {
	return func(pr *models.Proposal) bool {
		return pr.ProjectID == projectID && (artisanID == nil || pr.ArtisanID == *artisanID)
	}
}

func (m *MemoryStore) ListProposalsForProject(_ context.Context, projectID uuid.UUID, artisanID *uuid.UUID, p models.Pagination) ([]models.ProposalDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return paginate(m.proposalDetails(forProject(projectID, artisanID), false), p), nil
}

func (m *MemoryStore) CountProposalsForProject(_ context.Context, projectID uuid.UUID, artisanID *uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.proposalDetails(forProject(projectID, artisanID), false)), nil
}

func (m *MemoryStore) ListProposalsByArtisan(_ context.Context, artisanID uuid.UUID, p models.Pagination) ([]models.ProposalDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byArtisan := func(pr *models.Proposal) bool { return pr.ArtisanID == artisanID }
	return paginate(m.proposalDetails(byArtisan, true), p), nil
}

func (m *MemoryStore) CountProposalsByArtisan(_ context.Context, artisanID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, pr := range m.proposals {
		if pr.ArtisanID == artisanID {
			n++
		}
	}
	return n, nil
}
