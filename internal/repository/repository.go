package repository

import (
	"context"
	"math"
	"time"

	"github.com/yukikurage/task-project-api/internal/models"
)

// Preload names accepted by the FindByID/FindOwnedByID methods
const (
	PreloadOwner   = "Owner"
	PreloadProject = "Project"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	FindByID(ctx context.Context, id uint64) (*models.User, error)

	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether either value is already taken
	ExistsByUsernameOrEmail(ctx context.Context, username string, email *string) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// FindOwnedByID finds a task by ID only if it belongs to ownerID
	FindOwnedByID(ctx context.Context, id, ownerID uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Save writes every column of task, including a nil ProjectID
	Save(ctx context.Context, task *models.Task) error

	// DeleteByID soft deletes a task
	DeleteByID(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks. OwnerID is mandatory.
type TaskFilter struct {
	OwnerID       uint64
	ProjectID     *uint64
	NoProject     bool
	Status        *models.TaskStatus
	DueBefore     *time.Time
	DueAfter      *time.Time
	SortByDueDate bool
	Page          int
	PageSize      int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error

	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	FindOwnedByID(ctx context.Context, id, ownerID uint64, preload ...string) (*models.Project, error)

	List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error)

	Save(ctx context.Context, project *models.Project) error

	// DeleteByID detaches the project's tasks and soft deletes the project in one transaction
	DeleteByID(ctx context.Context, id uint64) error

	CountTasks(ctx context.Context, projectID uint64) (int64, error)
}

// ProjectFilter holds filtering options for listing projects. OwnerID is mandatory.
type ProjectFilter struct {
	OwnerID  uint64
	Status   *models.ProjectStatus
	Page     int
	PageSize int
}

func paginate(page, pageSize int) (offset, limit int, ok bool) {
	if page > 0 && pageSize > 0 {
		if maxPage := math.MaxInt32/pageSize + 1; page > maxPage {
			page = maxPage
		}
		return (page - 1) * pageSize, pageSize, true
	}
	return 0, 0, false
}
