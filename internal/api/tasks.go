package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/models"
)

// ListTasks fetches the full task list for the authenticated user.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server representation,
// including the assigned id. Callers replace their local entry with
// the returned record.
func (c *Client) CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	var created models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/create/", fields, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask replaces the full editable field set of a task and
// returns the persisted record. The server is the source of truth;
// callers must adopt the returned representation rather than their
// submitted payload.
func (c *Client) UpdateTask(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error) {
	var updated models.Task
	path := fmt.Sprintf("/tasks/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task. No response body is expected.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d/", id), nil, nil)
}
