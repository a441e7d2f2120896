package repository

import (
	"context"

	"github.com/yukikurage/task-project-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Owner", "Tasks").Create(project).Error
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	if err := withPreloads(r.db.WithContext(ctx), preload).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) FindOwnedByID(ctx context.Context, id, ownerID uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	if err := withPreloads(r.db.WithContext(ctx), preload).
		Where("owner_id = ?", ownerID).
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{}).Where("projects.owner_id = ?", filter.OwnerID)

	if filter.Status != nil {
		query = query.Where("projects.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("projects.created_at DESC").Order("projects.id DESC")
	if offset, limit, ok := paginate(filter.Page, filter.PageSize); ok {
		listQuery = listQuery.Offset(offset).Limit(limit)
	}

	var projects []models.Project
	if err := listQuery.Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *GormProjectRepository) Save(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Owner", "Tasks").Save(project).Error
}

func (r *GormProjectRepository) DeleteByID(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

func (r *GormProjectRepository) CountTasks(ctx context.Context, projectID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
