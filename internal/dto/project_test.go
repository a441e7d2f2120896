package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/utils"
)

func paramsFor(page, limit int) utils.PaginationParams {
	return utils.NewPaginationParams(page, limit)
}

func sampleProject() models.Project {
	return models.Project{
		ID:          9,
		Name:        "Reports",
		Description: "all the reports",
		Status:      models.ProjectStatusOnHold,
		OwnerID:     1,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyProjectUpdate(t *testing.T) {
	project := sampleProject()
	ApplyProjectUpdate(&project, UpdateProjectDTO{})
	assert.Equal(t, sampleProject(), project)

	ApplyProjectUpdate(&project, UpdateProjectDTO{Status: ptr(models.ProjectStatusCompleted)})
	want := sampleProject()
	want.Status = models.ProjectStatusCompleted
	assert.Equal(t, want, project)
}

func TestToProject(t *testing.T) {
	project := ToProject(CreateProjectDTO{Name: "n", Description: "d", Status: models.ProjectStatusArchived})

	assert.Equal(t, "n", project.Name)
	assert.Equal(t, "d", project.Description)
	assert.Equal(t, models.ProjectStatusArchived, project.Status)
	assert.Zero(t, project.OwnerID)
	assert.Nil(t, project.Tasks)
}

func TestToProjectResponse_OmitsTasks(t *testing.T) {
	project := sampleProject()
	project.Tasks = []models.Task{{ID: 1, Title: "hidden"}}

	body, err := json.Marshal(ToProjectDetailResponse(project, 1))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.NotContains(t, raw, "tasks")
	assert.Equal(t, float64(1), raw["task_count"])
	assert.Equal(t, "Reports", raw["name"])
}

func TestToProjectTasksResponse(t *testing.T) {
	tasks := []models.Task{{ID: 1, Title: "a", Status: models.TaskStatusTodo}}

	resp := ToProjectTasksResponse(sampleProject(), tasks, paramsFor(1, 20), 1)

	assert.Equal(t, ProjectSummaryDTO{ID: 9, Name: "Reports", Status: models.ProjectStatusOnHold}, resp.Project)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "a", resp.Tasks[0].Title)
}

func TestStatusValidators(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, registerOn(v))

	assert.NoError(t, v.Struct(CreateTaskDTO{Title: "x"}))
	assert.NoError(t, v.Struct(CreateTaskDTO{Title: "x", Status: models.TaskStatusInProgress}))
	assert.Error(t, v.Struct(CreateTaskDTO{Title: "x", Status: "BLOCKED"}))

	assert.NoError(t, v.Struct(UpdateTaskDTO{}))
	assert.Error(t, v.Struct(UpdateTaskDTO{Status: ptr(models.TaskStatus("nope"))}))
	assert.Error(t, v.Struct(UpdateTaskDTO{Title: ptr("")}))

	assert.NoError(t, v.Struct(CreateProjectDTO{Name: "p", Status: models.ProjectStatusActive}))
	assert.Error(t, v.Struct(CreateProjectDTO{Name: "p", Status: "DONE"}))
}
