package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/task-project-api/internal/auth"
	"github.com/yukikurage/task-project-api/internal/dto"
	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrTitleRequired         = errors.New("title is required")
	ErrTitleEmpty            = errors.New("title cannot be empty")
	ErrInvalidTaskStatus     = errors.New("invalid task status")
	ErrConflictingProjectOps = errors.New("project_id and detach_project cannot be combined")
)

// TaskService handles task business logic. Tasks are only visible to their owner.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	ProjectID     *uint64
	NoProject     bool
	Status        *models.TaskStatus
	DueBefore     *time.Time
	DueAfter      *time.Time
	SortByDueDate bool
	Page          int
	PageSize      int
}

func (in ListTasksInput) filter(ownerID uint64) repository.TaskFilter {
	return repository.TaskFilter{
		OwnerID:       ownerID,
		ProjectID:     in.ProjectID,
		NoProject:     in.NoProject,
		Status:        in.Status,
		DueBefore:     in.DueBefore,
		DueAfter:      in.DueAfter,
		SortByDueDate: in.SortByDueDate,
		Page:          in.Page,
		PageSize:      in.PageSize,
	}
}

func (s *TaskService) List(ctx context.Context, principal auth.Principal, input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(ctx, input.filter(principal.UserID))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *TaskService) Get(ctx context.Context, principal auth.Principal, taskID uint64) (*models.Task, error) {
	return s.findOwned(ctx, principal, taskID, repository.PreloadOwner, repository.PreloadProject)
}

// Create converts the request, takes the owner from the principal and
// attaches the requested project after resolving it.
func (s *TaskService) Create(ctx context.Context, principal auth.Principal, input dto.CreateTaskDTO) (*models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task := dto.ToTask(input)
	task.OwnerID = principal.UserID

	if input.ProjectID != nil {
		project, err := s.resolveProject(ctx, principal, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		task.ProjectID = &project.ID
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, repository.PreloadOwner, repository.PreloadProject)
}

// Update patches the task and reassigns its project only when the requested id differs.
func (s *TaskService) Update(ctx context.Context, principal auth.Principal, taskID uint64, patch dto.UpdateTaskDTO) (*models.Task, error) {
	if patch.DetachProject && patch.ProjectID != nil {
		return nil, ErrConflictingProjectOps
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, ErrTitleEmpty
		}
		patch.Title = &trimmed
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findOwned(ctx, principal, taskID)
	if err != nil {
		return nil, err
	}

	dto.ApplyTaskUpdate(task, patch)

	switch {
	case patch.DetachProject:
		task.ProjectID = nil
	case patch.ProjectID != nil && (task.ProjectID == nil || *task.ProjectID != *patch.ProjectID):
		project, err := s.resolveProject(ctx, principal, *patch.ProjectID)
		if err != nil {
			return nil, err
		}
		task.ProjectID = &project.ID
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, repository.PreloadOwner, repository.PreloadProject)
}

func (s *TaskService) Delete(ctx context.Context, principal auth.Principal, taskID uint64) error {
	if _, err := s.findOwned(ctx, principal, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteByID(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) findOwned(ctx context.Context, principal auth.Principal, taskID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindOwnedByID(ctx, taskID, principal.UserID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// resolveProject turns a caller-supplied project id into a live project owned by the caller
func (s *TaskService) resolveProject(ctx context.Context, principal auth.Principal, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindOwnedByID(ctx, projectID, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
