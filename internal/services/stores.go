package services

import (
	"context"

	"artisan-marketplace-backend/internal/imagegen"
	"artisan-marketplace-backend/internal/models"
	"github.com/google/uuid"
)

type ImageStore interface {
	CreateGeneratedImage(ctx context.Context, img *models.GeneratedImage) error
	GetGeneratedImage(ctx context.Context, id uuid.UUID) (*models.GeneratedImage, error)
	ListGeneratedImages(ctx context.Context, userID uuid.UUID, p models.Pagination) ([]models.GeneratedImage, error)
	CountGeneratedImages(ctx context.Context, userID uuid.UUID) (int, error)
}

type ProjectStore interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetProjectDetails(ctx context.Context, id uuid.UUID) (*models.ProjectDetails, error)
	ListProjects(ctx context.Context, filter models.ProjectFilter) ([]models.ProjectDetails, error)
	CountProjects(ctx context.Context, filter models.ProjectFilter) (int, error)
	UpdateProjectStatus(ctx context.Context, id uuid.UUID, from, to models.ProjectStatus) (*models.Project, error)
	AcceptProposal(ctx context.Context, projectID, proposalID uuid.UUID) (*models.Project, error)
}

type ProposalStore interface {
	CreateProposal(ctx context.Context, proposal *models.Proposal) error
	GetProposal(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	HasProposal(ctx context.Context, projectID, artisanID uuid.UUID) (bool, error)
	ListProposalsForProject(ctx context.Context, projectID uuid.UUID, artisanID *uuid.UUID, p models.Pagination) ([]models.ProposalDetails, error)
	CountProposalsForProject(ctx context.Context, projectID uuid.UUID, artisanID *uuid.UUID) (int, error)
	ListProposalsByArtisan(ctx context.Context, artisanID uuid.UUID, p models.Pagination) ([]models.ProposalDetails, error)
	CountProposalsByArtisan(ctx context.Context, artisanID uuid.UUID) (int, error)
}

type ArtisanStore interface {
	GetArtisanProfile(ctx context.Context, userID uuid.UUID) (*models.ArtisanProfile, error)
	FindNIPOwner(ctx context.Context, nip string) (uuid.UUID, error)
	UpsertArtisanProfile(ctx context.Context, profile *models.ArtisanProfile) error
	ReplaceSpecializations(ctx context.Context, userID uuid.UUID, ids []int64) error
	SetArtisanVisibility(ctx context.Context, userID uuid.UUID, isPublic bool) (*models.ArtisanProfile, error)
	ListPublicArtisans(ctx context.Context, filter models.ArtisanFilter) ([]models.ArtisanSummary, error)
	CountPublicArtisans(ctx context.Context, filter models.ArtisanFilter) (int, error)

	CreatePortfolioImage(ctx context.Context, img *models.PortfolioImage) error
	GetPortfolioImage(ctx context.Context, id uuid.UUID) (*models.PortfolioImage, error)
	ListPortfolioImages(ctx context.Context, artisanID uuid.UUID) ([]models.PortfolioImage, error)
	CountPortfolioImages(ctx context.Context, artisanID uuid.UUID) (int, error)
	DeletePortfolioImage(ctx context.Context, id uuid.UUID) error
}

type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) error
	HasReview(ctx context.Context, projectID, reviewerID uuid.UUID) (bool, error)
	ListReviewsForUser(ctx context.Context, revieweeID uuid.UUID, p models.Pagination) ([]models.Review, error)
	CountReviewsForUser(ctx context.Context, revieweeID uuid.UUID) (int, error)
	GetRatingSummary(ctx context.Context, revieweeID uuid.UUID) (models.RatingSummary, error)
}

type DictionaryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
	ListSpecializations(ctx context.Context) ([]models.Specialization, error)
}

// BlobStore is one object storage bucket.
type BlobStore interface {
	Upload(ctx context.Context, storagePath, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, storagePath string) error
}

// ImageGenerator is the external AI collaborator.
type ImageGenerator interface {
	EnhancePrompt(ctx context.Context, prompt string) (*imagegen.EnhancedPrompt, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}
