package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/services"
	"github.com/yukikurage/task-project-api/internal/utils"
)

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parseTaskQuery reads the task list filters shared by /tasks and /projects/:id/tasks
func parseTaskQuery(c *gin.Context) (services.ListTasksInput, utils.PaginationParams, error) {
	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		Page:          params.Page,
		PageSize:      params.Limit,
		SortByDueDate: c.Query("sort") == "due_date",
	}

	if s := c.Query("status"); s != "" {
		status := models.TaskStatus(s)
		if !status.Valid() {
			return input, params, fmt.Errorf("invalid status %q", s)
		}
		input.Status = &status
	}

	if s := c.Query("project_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return input, params, fmt.Errorf("invalid project_id")
		}
		input.ProjectID = &id
	}

	if s := c.Query("unassigned"); s != "" {
		unassigned, err := strconv.ParseBool(s)
		if err != nil {
			return input, params, fmt.Errorf("invalid unassigned")
		}
		input.NoProject = unassigned
	}
	if input.NoProject && input.ProjectID != nil {
		return input, params, fmt.Errorf("project_id and unassigned cannot be combined")
	}

	var err error
	if input.DueBefore, err = parseTimeQuery(c, "due_before"); err != nil {
		return input, params, err
	}
	if input.DueAfter, err = parseTimeQuery(c, "due_after"); err != nil {
		return input, params, err
	}

	return input, params, nil
}

// parseTimeQuery accepts RFC 3339 timestamps or plain dates
func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid %s", name)
}
