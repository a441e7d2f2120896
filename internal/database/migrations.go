package database

import (
	"fmt"

	"github.com/yukikurage/task-project-api/internal/logger"
	"gorm.io/gorm"
)

// compositeIndexes back the owner-scoped list queries
var compositeIndexes = []struct {
	table   string
	name    string
	columns string
}{
	{"tasks", "idx_tasks_owner_status", "owner_id, status"},
	{"tasks", "idx_tasks_owner_due_date", "owner_id, due_date"},
	{"tasks", "idx_tasks_owner_project", "owner_id, project_id"},
	{"projects", "idx_projects_owner_status", "owner_id, status"},
}

// AddIndexes adds the composite indexes AutoMigrate cannot express through tags
func AddIndexes(db *gorm.DB, log *logger.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debugw("Index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Infow("Created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
