package dto

import (
	"time"

	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/utils"
)

type CreateProjectDTO struct {
	Name        string               `json:"name" binding:"required,max=255"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status" binding:"omitempty,project_status"`
}

// UpdateProjectDTO patches a project. Nil fields leave the project unchanged.
type UpdateProjectDTO struct {
	Name        *string               `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string               `json:"description"`
	Status      *models.ProjectStatus `json:"status" binding:"omitempty,project_status"`
}

// ProjectResponse never carries the project's tasks
type ProjectResponse struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	OwnerID     uint64               `json:"owner_id"`
	Owner       *UserSummaryDTO      `json:"owner,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProjectDetailResponse adds the number of tasks in the project
type ProjectDetailResponse struct {
	ProjectResponse
	TaskCount int64 `json:"task_count"`
}

// ProjectSummaryDTO is embedded in task responses
type ProjectSummaryDTO struct {
	ID     uint64               `json:"id"`
	Name   string               `json:"name"`
	Status models.ProjectStatus `json:"status"`
}

type ProjectListResponse struct {
	Projects   []ProjectResponse        `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ProjectTasksResponse lists the tasks of one project
type ProjectTasksResponse struct {
	Project    ProjectSummaryDTO        `json:"project"`
	Tasks      []TaskSummaryDTO         `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToProject(in CreateProjectDTO) models.Project {
	return models.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
	}
}

func ApplyProjectUpdate(project *models.Project, patch UpdateProjectDTO) {
	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}
}

func ToProjectResponse(project models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	if project.Owner.ID != 0 {
		owner := ToUserSummary(project.Owner)
		resp.Owner = &owner
	}

	return resp
}

func ToProjectDetailResponse(project models.Project, taskCount int64) ProjectDetailResponse {
	return ProjectDetailResponse{
		ProjectResponse: ToProjectResponse(project),
		TaskCount:       taskCount,
	}
}

func ToProjectSummary(project models.Project) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ID:     project.ID,
		Name:   project.Name,
		Status: project.Status,
	}
}

func ToProjectListResponse(projects []models.Project, page utils.PaginationParams, total int64) ProjectListResponse {
	items := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		items[i] = ToProjectResponse(project)
	}

	return ProjectListResponse{
		Projects:   items,
		Pagination: utils.NewPaginationResponse(page, total),
	}
}

func ToProjectTasksResponse(project models.Project, tasks []models.Task, page utils.PaginationParams, total int64) ProjectTasksResponse {
	items := make([]TaskSummaryDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskSummary(task)
	}

	return ProjectTasksResponse{
		Project:    ToProjectSummary(project),
		Tasks:      items,
		Pagination: utils.NewPaginationResponse(page, total),
	}
}
