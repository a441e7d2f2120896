package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-project-api/internal/dto"
	apierrors "github.com/yukikurage/task-project-api/internal/errors"
	"github.com/yukikurage/task-project-api/internal/logger"
	"github.com/yukikurage/task-project-api/internal/middleware"
	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/services"
	"github.com/yukikurage/task-project-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	log            *logger.Logger
}

func NewProjectHandler(projectService *services.ProjectService, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log.WithComponent("project_handler"),
	}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListProjectsInput{Page: params.Page, PageSize: params.Limit}
	if s := c.Query("status"); s != "" {
		status := models.ProjectStatus(s)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}

	projects, total, err := h.projectService.List(c.Request.Context(), principal, input)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params, total))
}

// GetProject returns the project with its task count
func (h *ProjectHandler) GetProject(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, count, err := h.projectService.Get(c.Request.Context(), principal, projectID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailResponse(*project, count))
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateProjectDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(*project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	var req dto.UpdateProjectDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), principal, projectID, req)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(*project))
}

// DeleteProject deletes the project and keeps its tasks unassigned
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), principal, projectID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	input, params, err := parseTaskQuery(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	project, tasks, total, err := h.projectService.ListTasks(c.Request.Context(), principal, projectID, input)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectTasksResponse(*project, tasks, params, total))
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrInvalidProjectStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		h.log.Errorw("Project request failed", "path", c.FullPath(), "error", err)
		apierrors.InternalError(c, "")
	}
}
