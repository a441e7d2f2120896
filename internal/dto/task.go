package dto

import (
	"time"

	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/utils"
)

// CreateTaskDTO holds the writable fields of a new task.
// ProjectID is resolved to a live project by the service, never copied by ToTask.
type CreateTaskDTO struct {
	Title       string            `json:"title" binding:"required,max=255"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status" binding:"omitempty,task_status"`
	DueDate     *time.Time        `json:"due_date"`
	ProjectID   *uint64           `json:"project_id"`
}

// UpdateTaskDTO patches a task. Nil fields leave the task unchanged.
type UpdateTaskDTO struct {
	Title         *string            `json:"title" binding:"omitempty,min=1,max=255"`
	Description   *string            `json:"description"`
	Status        *models.TaskStatus `json:"status" binding:"omitempty,task_status"`
	DueDate       *time.Time         `json:"due_date"`
	ClearDueDate  bool               `json:"clear_due_date"`
	ProjectID     *uint64            `json:"project_id"`
	DetachProject bool               `json:"detach_project"`
}

// TaskResponse is the read-only projection of a task
type TaskResponse struct {
	ID          uint64             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      models.TaskStatus  `json:"status"`
	DueDate     *time.Time         `json:"due_date"`
	OwnerID     uint64             `json:"owner_id"`
	ProjectID   *uint64            `json:"project_id"`
	Owner       *UserSummaryDTO    `json:"owner,omitempty"`
	Project     *ProjectSummaryDTO `json:"project"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TaskSummaryDTO is embedded in project responses
type TaskSummaryDTO struct {
	ID      uint64            `json:"id"`
	Title   string            `json:"title"`
	Status  models.TaskStatus `json:"status"`
	DueDate *time.Time        `json:"due_date"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskResponse           `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTask copies the scalar fields of a create request into a new task.
func ToTask(in CreateTaskDTO) models.Task {
	return models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     copyTime(in.DueDate),
	}
}

// ApplyTaskUpdate overwrites the fields set in patch. Project reassignment
// is left to the caller.
func ApplyTaskUpdate(task *models.Task, patch UpdateTaskDTO) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = copyTime(patch.DueDate)
	}
}

// ToTaskResponse converts a task; Owner and Project are included only if preloaded.
func ToTaskResponse(task models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		OwnerID:     task.OwnerID,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Owner.ID != 0 {
		owner := ToUserSummary(task.Owner)
		resp.Owner = &owner
	}

	if task.Project != nil && task.Project.ID != 0 {
		project := ToProjectSummary(*task.Project)
		resp.Project = &project
	}

	return resp
}

func ToTaskSummary(task models.Task) TaskSummaryDTO {
	return TaskSummaryDTO{
		ID:      task.ID,
		Title:   task.Title,
		Status:  task.Status,
		DueDate: task.DueDate,
	}
}

func ToTaskListResponse(tasks []models.Task, page utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskResponse(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Pagination: utils.NewPaginationResponse(page, total),
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
