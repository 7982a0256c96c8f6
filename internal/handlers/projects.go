package handlers

import (
	"net/http"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectsHandler struct {
	service *services.ProjectService
}

func NewProjectsHandler(service *services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: service}
}

// CreateProject godoc
// @Summary     Create a project
// @Description Turns one of the caller's unused generated images into an open project.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateProjectRequest true "Project"
// @Success     201 {object} models.ProjectDetails
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.service.Create(c.Request.Context(), userID, middleware.Role(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListProjects godoc
// @Summary     Browse projects
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       status      query string false "Status" Enums(open, in_progress, completed, closed)
// @Param       category_id query int    false "Category"
// @Param       material_id query int    false "Material"
// @Param       page        query int    false "Page (1-indexed)"
// @Param       limit       query int    false "Page size (max 100)"
// @Success     200 {object} models.Page[models.ProjectDetails]
// @Failure     422 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	var filter models.ProjectFilter
	if !bindQuery(c, &filter) {
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListMyProjects godoc
// @Summary     List the caller's projects
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       status      query string false "Status" Enums(open, in_progress, completed, closed)
// @Param       category_id query int    false "Category"
// @Param       material_id query int    false "Material"
// @Param       page        query int    false "Page (1-indexed)"
// @Param       limit       query int    false "Page size (max 100)"
// @Success     200 {object} models.Page[models.ProjectDetails]
// @Failure     403 {object} models.ErrorResponse
// @Router      /projects/mine [get]
func (h *ProjectsHandler) ListMyProjects(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var filter models.ProjectFilter
	if !bindQuery(c, &filter) {
		return
	}

	page, err := h.service.ListForClient(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetProject godoc
// @Summary     Get a project
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.ProjectDetails
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	project, err := h.service.Get(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateStatus godoc
// @Summary     Change a project's status
// @Description Allowed: open → closed, in_progress → completed|closed, completed → closed.
// @Description open → in_progress happens only by accepting a proposal.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.UpdateStatusRequest true "Target status"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /projects/{project_id}/status [patch]
func (h *ProjectsHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.service.UpdateStatus(c.Request.Context(), projectID, userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// AcceptProposal godoc
// @Summary     Accept a proposal
// @Description Moves an open project to in_progress and freezes the proposal's price.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.AcceptProposalRequest true "Proposal"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/accept [post]
func (h *ProjectsHandler) AcceptProposal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "project_id")
	if !ok {
		return
	}

	var req models.AcceptProposalRequest
	if !bindJSON(c, &req) {
		return
	}
	proposalID, err := uuid.Parse(req.ProposalID)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid proposal id", err))
		return
	}

	project, err := h.service.AcceptProposal(c.Request.Context(), projectID, userID, proposalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
