package handlers

import (
	"net/http"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ProposalsHandler struct {
	service *services.ProposalService
}

func NewProposalsHandler(service *services.ProposalService) *ProposalsHandler {
	return &ProposalsHandler{service: service}
}

// Submit godoc
// @Summary     Submit a proposal
// @Description Artisans bid once per open project. The optional attachment (PDF or image,
// @Description up to 10 MiB) is uploaded only after every check passes.
// @Tags        proposals
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id path     string true  "Project ID (UUID)"
// @Param       price      formData number true  "Price (0 < price ≤ 1000000)"
// @Param       message    formData string false "Message"
// @Param       attachment formData file   false "Attachment"
// @Success     201 {object} models.Proposal
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /projects/{project_id}/proposals [post]
func (h *ProposalsHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	// Non-artisans are turned away before the body is parsed.
	if middleware.Role(c) != models.RoleArtisan {
		respondError(c, apperrors.New(apperrors.CodeProposalRoleRequired, "only artisans can submit proposals"))
		return
	}
	limitBody(c, models.AttachmentPolicy)

	var form models.SubmitProposalForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, err)
		return
	}

	attachment, err := readUpload(c, "attachment", models.AttachmentPolicy, false)
	if err != nil {
		respondError(c, err)
		return
	}

	proposal, err := h.service.Submit(c.Request.Context(), models.NewProposal{
		ProjectID:  projectID,
		ArtisanID:  userID,
		Role:       middleware.Role(c),
		Price:      form.Price,
		Message:    form.Message,
		Attachment: attachment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

// ListForProject godoc
// @Summary     List a project's proposals
// @Description The owner sees every proposal; an artisan sees only their own.
// @Tags        proposals
// @Produce     json
// @Security    Bearer
// @Param       project_id path  string true  "Project ID (UUID)"
// @Param       page       query int    false "Page (1-indexed)"
// @Param       limit      query int    false "Page size (max 100)"
// @Success     200 {object} models.Page[models.ProposalDetails]
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/proposals [get]
func (h *ProposalsHandler) ListForProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	var p models.Pagination
	if !bindQuery(c, &p) {
		return
	}

	page, err := h.service.ListForProject(c.Request.Context(), projectID, userID, middleware.Role(c), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListMine godoc
// @Summary     List the caller's proposals
// @Tags        proposals
// @Produce     json
// @Security    Bearer
// @Param       page  query int false "Page (1-indexed)"
// @Param       limit query int false "Page size (max 100)"
// @Success     200 {object} models.Page[models.ProposalDetails]
// @Failure     403 {object} models.ErrorResponse
// @Router      /proposals/mine [get]
func (h *ProposalsHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var p models.Pagination
	if !bindQuery(c, &p) {
		return
	}

	page, err := h.service.ListForArtisan(c.Request.Context(), userID, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
