package services

import (
	"context"
	"errors"
	"strings"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/metrics"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ProposalService struct {
	proposals   ProposalStore
	projects    ProjectStore
	attachments BlobStore
	metrics     *metrics.Metrics
	logger      logrus.FieldLogger
}

func NewProposalService(proposals ProposalStore, projects ProjectStore, attachments BlobStore, m *metrics.Metrics, logger logrus.FieldLogger) *ProposalService {
	return &ProposalService{
		proposals:   proposals,
		projects:    projects,
		attachments: attachments,
		metrics:     m,
		logger:      logger,
	}
}

// Submit records an artisan's bid. Preconditions are checked in a fixed
// order and the attachment is uploaded only once all of them pass. If the
// insert then fails the upload is removed on a best-effort basis.
func (s *ProposalService) Submit(ctx context.Context, in models.NewProposal) (*models.Proposal, error) {
	if in.Role != models.RoleArtisan {
		return nil, apperrors.New(apperrors.CodeProposalRoleRequired, "only artisans can submit proposals")
	}

	project, err := s.projects.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, notFound(err, apperrors.CodeProjectNotFound, "get project")
	}
	if !project.Status.AcceptsProposals() {
		return nil, apperrors.New(apperrors.CodeProjectNotAcceptingProposals, "project is not accepting proposals")
	}

	exists, err := s.proposals.HasProposal(ctx, in.ProjectID, in.ArtisanID)
	if err != nil {
		return nil, internalErr("check existing proposal", err)
	}
	if exists {
		return nil, apperrors.New(apperrors.CodeProposalAlreadyExists, "proposal already submitted")
	}

	proposal := &models.Proposal{
		ProjectID: in.ProjectID,
		ArtisanID: in.ArtisanID,
		Price:     in.Price,
	}
	if msg := strings.TrimSpace(in.Message); msg != "" {
		proposal.Message = &msg
	}

	if in.Attachment != nil {
		storagePath := models.ObjectPath(in.ArtisanID, in.ProjectID, in.Attachment.Extension, now())
		url, err := s.attachments.Upload(ctx, storagePath, in.Attachment.ContentType, in.Attachment.Data)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeUploadFailed, "upload attachment", err)
		}
		proposal.AttachmentURL = &url
		proposal.AttachmentPath = &storagePath
	}

	if err := s.proposals.CreateProposal(ctx, proposal); err != nil {
		s.discardAttachment(ctx, proposal)
		if errors.Is(err, store.ErrConflict) {
			return nil, apperrors.Wrap(apperrors.CodeProposalAlreadyExists, "proposal already submitted", err)
		}
		return nil, internalErr("create proposal", err)
	}

	s.metrics.ProposalSubmitted()
	return proposal, nil
}

func (s *ProposalService) discardAttachment(ctx context.Context, proposal *models.Proposal) {
	if proposal.AttachmentPath == nil {
		return
	}
	if err := s.attachments.Remove(context.WithoutCancel(ctx), *proposal.AttachmentPath); err != nil {
		s.logger.WithError(err).WithField("path", *proposal.AttachmentPath).
			Warn("failed to remove orphaned proposal attachment")
	}
}

// ListForProject shows the owner every proposal and an artisan only their own.
func (s *ProposalService) ListForProject(ctx context.Context, projectID, callerID uuid.UUID, role models.Role, p models.Pagination) (models.Page[models.ProposalDetails], error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return models.Page[models.ProposalDetails]{}, notFound(err, apperrors.CodeProjectNotFound, "get project")
	}

	var artisanID *uuid.UUID
	switch {
	case project.ClientID == callerID:
	case role == models.RoleArtisan:
		artisanID = &callerID
	default:
		return models.Page[models.ProposalDetails]{}, apperrors.New(apperrors.CodeProjectForbidden, "not a participant of this project")
	}

	return fetchPage(ctx, p,
		func(ctx context.Context) ([]models.ProposalDetails, error) {
			return s.proposals.ListProposalsForProject(ctx, projectID, artisanID, p)
		},
		func(ctx context.Context) (int, error) {
			return s.proposals.CountProposalsForProject(ctx, projectID, artisanID)
		},
	)
}

// ListForArtisan lists the caller's own proposals across projects.
func (s *ProposalService) ListForArtisan(ctx context.Context, artisanID uuid.UUID, p models.Pagination) (models.Page[models.ProposalDetails], error) {
	return fetchPage(ctx, p,
		func(ctx context.Context) ([]models.ProposalDetails, error) {
			return s.proposals.ListProposalsByArtisan(ctx, artisanID, p)
		},
		func(ctx context.Context) (int, error) { return s.proposals.CountProposalsByArtisan(ctx, artisanID) },
	)
}
