package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-project-api/internal/auth"
	"github.com/yukikurage/task-project-api/internal/dto"
	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
)

// ProjectService handles project business logic. Projects are only visible to their owner.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

type ListProjectsInput struct {
	Status   *models.ProjectStatus
	Page     int
	PageSize int
}

func (s *ProjectService) List(ctx context.Context, principal auth.Principal, input ListProjectsInput) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(ctx, repository.ProjectFilter{
		OwnerID:  principal.UserID,
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Get returns the project together with the number of tasks in it
func (s *ProjectService) Get(ctx context.Context, principal auth.Principal, projectID uint64) (*models.Project, int64, error) {
	project, err := s.findOwned(ctx, principal, projectID, repository.PreloadOwner)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.projectRepo.CountTasks(ctx, project.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return project, count, nil
}

func (s *ProjectService) Create(ctx context.Context, principal auth.Principal, input dto.CreateProjectDTO) (*models.Project, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrProjectNameRequired
	}
	if input.Status == "" {
		input.Status = models.ProjectStatusActive
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	project := dto.ToProject(input)
	project.OwnerID = principal.UserID

	if err := s.projectRepo.Create(ctx, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(ctx, project.ID, repository.PreloadOwner)
}

func (s *ProjectService) Update(ctx context.Context, principal auth.Principal, projectID uint64, patch dto.UpdateProjectDTO) (*models.Project, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, ErrProjectNameRequired
		}
		patch.Name = &trimmed
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	project, err := s.findOwned(ctx, principal, projectID)
	if err != nil {
		return nil, err
	}

	dto.ApplyProjectUpdate(project, patch)

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(ctx, project.ID, repository.PreloadOwner)
}

// Delete removes the project; its tasks survive without a project
func (s *ProjectService) Delete(ctx context.Context, principal auth.Principal, projectID uint64) error {
	if _, err := s.findOwned(ctx, principal, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.DeleteByID(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ListTasks lists the tasks of one project
func (s *ProjectService) ListTasks(ctx context.Context, principal auth.Principal, projectID uint64, input ListTasksInput) (*models.Project, []models.Task, int64, error) {
	project, err := s.findOwned(ctx, principal, projectID)
	if err != nil {
		return nil, nil, 0, err
	}

	input.ProjectID = &project.ID
	input.NoProject = false

	tasks, total, err := s.taskRepo.List(ctx, input.filter(principal.UserID))
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return project, tasks, total, nil
}

func (s *ProjectService) findOwned(ctx context.Context, principal auth.Principal, projectID uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindOwnedByID(ctx, projectID, principal.UserID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
