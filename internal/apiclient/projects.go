package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// ListProjects returns every active project
func (c *Client) ListProjects(ctx context.Context) (*dto.ProjectListResponse, error) {
	var out dto.ProjectListResponse
	if err := c.get(ctx, "/projects", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject posts a new project. Faculty only.
func (c *Client) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.post(ctx, "/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStudentProjects returns the projects a student can see: active ones plus
// those they applied to. Non-positive page arguments fall back to the defaults.
func (c *Client) ListStudentProjects(ctx context.Context, page, pageSize int) (*dto.StudentProjectsResponse, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	var out dto.StudentProjectsResponse
	if err := c.get(ctx, "/projects/student", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyProjects returns the caller's own projects
func (c *Client) ListMyProjects(ctx context.Context) (*dto.ProjectListResponse, error) {
	var out dto.ProjectListResponse
	if err := c.get(ctx, "/projects/my", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProject fetches one project with its creator embedded
func (c *Client) GetProject(ctx context.Context, pid string) (*models.Project, error) {
	var out models.Project
	if err := c.get(ctx, pathf("/projects/%s", pid), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject changes the non-nil fields of req. Owner only.
func (c *Client) UpdateProject(ctx context.Context, pid string, req dto.UpdateProjectRequest) (*models.Project, error) {
	var out dto.ProjectResponse
	if err := c.put(ctx, pathf("/projects/%s", pid), req, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

// DeleteProject removes a project. Owner only.
func (c *Client) DeleteProject(ctx context.Context, pid string) (*dto.DeleteProjectResponse, error) {
	var out dto.DeleteProjectResponse
	if err := c.delete(ctx, pathf("/projects/%s", pid), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWorkingUsers returns the project team
func (c *Client) ListWorkingUsers(ctx context.Context, pid string) (*dto.WorkingUsersResponse, error) {
	var out dto.WorkingUsersResponse
	if err := c.get(ctx, pathf("/projects/%s/working-users", pid), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveWorkingUser takes uid off the project team
func (c *Client) RemoveWorkingUser(ctx context.Context, pid, uid string) (string, error) {
	var out dto.MessageResponse
	if err := c.delete(ctx, pathf("/projects/%s/working-users/%s", pid, uid), &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
