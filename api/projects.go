package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lseungyeop/portfolio-admin/models"
)

// ListProjects fetches every project. Public route.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project by id. Public route.
func (c *Client) GetProject(ctx context.Context, id int64) (models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &project)
	return project, err
}

// CreateProject registers a new project. Admin route.
func (c *Client) CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error) {
	var created models.Project
	err := c.do(ctx, http.MethodPost, "/admin/projects", draft, &created)
	return created, err
}

// UpdateProject replaces an existing project. Admin route.
func (c *Client) UpdateProject(ctx context.Context, id int64, draft models.ProjectDraft) (models.Project, error) {
	var updated models.Project
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/projects/%d", id), draft, &updated)
	return updated, err
}

// DeleteProject removes a project. Admin route.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/projects/%d", id), nil, nil)
}
