package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-project-api/internal/dto"
	apierrors "github.com/yukikurage/task-project-api/internal/errors"
	"github.com/yukikurage/task-project-api/internal/logger"
	"github.com/yukikurage/task-project-api/internal/middleware"
	"github.com/yukikurage/task-project-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         *logger.Logger
}

func NewTaskHandler(taskService *services.TaskService, log *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log.WithComponent("task_handler"),
	}
}

// ListTasks returns the caller's tasks.
// Filters: status, project_id, unassigned, due_before, due_after, sort=due_date
func (h *TaskHandler) ListTasks(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	input, params, err := parseTaskQuery(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	tasks, total, err := h.taskService.List(c.Request.Context(), principal, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), principal, taskID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// CreateTask creates a task owned by the caller
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task))
}

// UpdateTask applies a partial update
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req dto.UpdateTaskDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), principal, taskID, req)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), principal, taskID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrConflictingProjectOps):
		apierrors.BadRequest(c, err.Error())
	default:
		h.log.Errorw("Task request failed", "path", c.FullPath(), "error", err)
		apierrors.InternalError(c, "")
	}
}
