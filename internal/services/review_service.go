package services

import (
	"context"
	"errors"
	"strings"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
)

type ReviewService struct {
	reviews   ReviewStore
	projects  ProjectStore
	proposals ProposalStore
}

func NewReviewService(reviews ReviewStore, projects ProjectStore, proposals ProposalStore) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		projects:  projects,
		proposals: proposals,
	}
}

// Create lets the client or the accepted artisan of a completed project rate
// the other party once.
func (s *ReviewService) Create(ctx context.Context, projectID, reviewerID uuid.UUID, req models.CreateReviewRequest) (*models.Review, error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, notFound(err, apperrors.CodeProjectNotFound, "get project")
	}
	if !project.Status.AllowsReviews() {
		return nil, apperrors.New(apperrors.CodeProjectNotCompleted, "project is not completed")
	}
	if project.AcceptedProposalID == nil {
		return nil, apperrors.New(apperrors.CodeReviewForbidden, "project has no accepted artisan")
	}

	accepted, err := s.proposals.GetProposal(ctx, *project.AcceptedProposalID)
	if err != nil {
		return nil, internalErr("get accepted proposal", err)
	}

	var revieweeID uuid.UUID
	switch reviewerID {
	case project.ClientID:
		revieweeID = accepted.ArtisanID
	case accepted.ArtisanID:
		revieweeID = project.ClientID
	default:
		return nil, apperrors.New(apperrors.CodeReviewForbidden, "only project participants can review")
	}

	exists, err := s.reviews.HasReview(ctx, projectID, reviewerID)
	if err != nil {
		return nil, internalErr("check existing review", err)
	}
	if exists {
		return nil, apperrors.New(apperrors.CodeReviewAlreadyExists, "review already submitted")
	}

	review := &models.Review{
		ProjectID:  projectID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
	}
	if req.Comment != nil {
		if comment := strings.TrimSpace(*req.Comment); comment != "" {
			review.Comment = &comment
		}
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperrors.Wrap(apperrors.CodeReviewAlreadyExists, "review already submitted", err)
		}
		return nil, internalErr("create review", err)
	}
	return review, nil
}

func (s *ReviewService) ListForUser(ctx context.Context, userID uuid.UUID, p models.Pagination) (models.Page[models.Review], error) {
	return fetchPage(ctx, p,
		func(ctx context.Context) ([]models.Review, error) {
			return s.reviews.ListReviewsForUser(ctx, userID, p)
		},
		func(ctx context.Context) (int, error) { return s.reviews.CountReviewsForUser(ctx, userID) },
	)
}

func (s *ReviewService) RatingSummary(ctx context.Context, userID uuid.UUID) (models.RatingSummary, error) {
	summary, err := s.reviews.GetRatingSummary(ctx, userID)
	if err != nil {
		return models.RatingSummary{}, internalErr("get rating summary", err)
	}
	return summary, nil
}
