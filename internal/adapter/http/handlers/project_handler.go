package handlers

import (
	"net/http"

	request "agency_billing/internal/adapter/http/dto/request"
	response "agency_billing/internal/adapter/http/dto/response"
	"agency_billing/internal/adapter/http/middleware"
	"agency_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	usecase usecase.IProjectUseCase
}

func NewProjectHandler(uc usecase.IProjectUseCase) *ProjectHandler {
	return &ProjectHandler{usecase: uc}
}

// ListProjects godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.Envelope
// @Router       /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.usecase.ListProjects(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromProjects(projects)))
}

// GetProject godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  response.Envelope
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.usecase.GetProject(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromProject(p)))
}

// UpdateProject godoc
// @Summary      Update project status, progress or notes
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                        true  "Project id"
// @Param        body  body      request.UpdateProjectRequest  true  "Changes"
// @Success      200   {object}  response.Envelope
// @Router       /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var payload request.UpdateProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	p, err := h.usecase.UpdateProject(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ToUpdate())
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Project updated", response.FromProject(p)))
}

// AddComment godoc
// @Summary      Comment on a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                         true  "Project id"
// @Param        body  body      request.ProjectCommentRequest  true  "Comment"
// @Success      201   {object}  response.Envelope
// @Router       /projects/{id}/comments [post]
func (h *ProjectHandler) AddComment(c *gin.Context) {
	var payload request.ProjectCommentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	p, err := h.usecase.AddProjectComment(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ResolveText())
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusCreated, response.OK("Comment added", response.FromProject(p)))
}

// AddMilestone godoc
// @Summary      Add a milestone to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                    true  "Project id"
// @Param        body  body      request.MilestoneRequest  true  "Milestone"
// @Success      201   {object}  response.Envelope
// @Router       /projects/{id}/milestones [post]
func (h *ProjectHandler) AddMilestone(c *gin.Context) {
	var payload request.MilestoneRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	p, err := h.usecase.AddMilestone(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.Title, payload.DueDate)
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusCreated, response.OK("Milestone added", response.FromProject(p)))
}
