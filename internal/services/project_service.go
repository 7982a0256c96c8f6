package services

import (
	"context"
	"errors"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/metrics"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
)

type ProjectService struct {
	projects  ProjectStore
	proposals ProposalStore
	images    ImageStore
	metrics   *metrics.Metrics
}

func NewProjectService(projects ProjectStore, proposals ProposalStore, images ImageStore, m *metrics.Metrics) *ProjectService {
	return &ProjectService{
		projects:  projects,
		proposals: proposals,
		images:    images,
		metrics:   m,
	}
}

// Create turns one of the client's unused generated images into an open
// project.
func (s *ProjectService) Create(ctx context.Context, clientID uuid.UUID, role models.Role, req models.CreateProjectRequest) (*models.ProjectDetails, error) {
	if role != models.RoleClient {
		return nil, apperrors.New(apperrors.CodeClientRoleRequired, "only clients can create projects")
	}

	imageID, err := uuid.Parse(req.GeneratedImageID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid generated image id", err)
	}

	image, err := s.images.GetGeneratedImage(ctx, imageID)
	if err != nil {
		return nil, notFound(err, apperrors.CodeImageNotFound, "get generated image")
	}
	if image.UserID != clientID {
		return nil, apperrors.New(apperrors.CodeImageForbidden, "image belongs to another user")
	}
	if image.Used {
		return nil, apperrors.New(apperrors.CodeImageAlreadyUsed, "image already backs a project")
	}

	project := &models.Project{
		ClientID:         clientID,
		GeneratedImageID: imageID,
		CategoryID:       req.CategoryID,
		MaterialID:       req.MaterialID,
		Dimensions:       req.Dimensions,
		Budget:           req.Budget,
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return nil, apperrors.Wrap(apperrors.CodeImageAlreadyUsed, "image already backs a project", err)
		case errors.Is(err, store.ErrReference):
			return nil, apperrors.Wrap(apperrors.CodeInvalidRequest, "unknown category or material", err)
		default:
			return nil, internalErr("create project", err)
		}
	}

	details, err := s.projects.GetProjectDetails(ctx, project.ID)
	if err != nil {
		return nil, internalErr("get created project", err)
	}
	return details, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.ProjectDetails, error) {
	project, err := s.projects.GetProjectDetails(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.CodeProjectNotFound, "get project")
	}
	return project, nil
}

// List returns projects matching the equality filters.
func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter) (models.Page[models.ProjectDetails], error) {
	return fetchPage(ctx, filter.Pagination,
		func(ctx context.Context) ([]models.ProjectDetails, error) {
			return s.projects.ListProjects(ctx, filter)
		},
		func(ctx context.Context) (int, error) { return s.projects.CountProjects(ctx, filter) },
	)
}

// ListForClient lists the caller's own projects.
func (s *ProjectService) ListForClient(ctx context.Context, clientID uuid.UUID, filter models.ProjectFilter) (models.Page[models.ProjectDetails], error) {
	filter.ClientID = &clientID
	return s.List(ctx, filter)
}

// UpdateStatus applies a direct status transition requested by the owner.
// Requesting the current status is a no-op.
func (s *ProjectService) UpdateStatus(ctx context.Context, projectID, callerID uuid.UUID, to models.ProjectStatus) (*models.Project, error) {
	project, err := s.ownedProject(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}

	if project.Status == to {
		return project, nil
	}
	if !models.CanTransition(project.Status, to) {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidStatusTransition,
			"status transition not allowed",
			map[string]string{"From": string(project.Status), "To": string(to)})
	}

	updated, err := s.projects.UpdateProjectStatus(ctx, projectID, project.Status, to)
	if err != nil {
		if errors.Is(err, store.ErrStale) {
			return nil, apperrors.Wrap(apperrors.CodeProjectStatusConflict, "project status changed concurrently", err)
		}
		return nil, internalErr("update project status", err)
	}

	s.metrics.ProjectTransition(string(project.Status), string(to))
	return updated, nil
}

// AcceptProposal moves an open project to in_progress, freezing the chosen
// proposal's price.
func (s *ProjectService) AcceptProposal(ctx context.Context, projectID, callerID, proposalID uuid.UUID) (*models.Project, error) {
	project, err := s.ownedProject(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !project.Status.AcceptsProposals() {
		return nil, apperrors.New(apperrors.CodeProjectNotOpen, "project is not open")
	}

	proposal, err := s.proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, notFound(err, apperrors.CodeProposalNotFound, "get proposal")
	}
	if proposal.ProjectID != projectID {
		return nil, apperrors.New(apperrors.CodeProposalNotFound, "proposal belongs to another project")
	}

	accepted, err := s.projects.AcceptProposal(ctx, projectID, proposalID)
	if err != nil {
		if errors.Is(err, store.ErrStale) {
			return nil, apperrors.Wrap(apperrors.CodeProjectNotOpen, "project is no longer open", err)
		}
		return nil, internalErr("accept proposal", err)
	}

	s.metrics.ProposalAccepted()
	s.metrics.ProjectTransition(string(models.ProjectStatusOpen), string(models.ProjectStatusInProgress))
	return accepted, nil
}

func (s *ProjectService) ownedProject(ctx context.Context, projectID, callerID uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, notFound(err, apperrors.CodeProjectNotFound, "get project")
	}
	if project.ClientID != callerID {
		return nil, apperrors.New(apperrors.CodeProjectForbidden, "only the project owner can do this")
	}
	return project, nil
}
