package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/app/repositories"
	"github.com/yigit/researchconnect/internal/middleware"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
	"github.com/yigit/researchconnect/internal/pkg/helpers"
)

// ProjectController handles project CRUD and team membership
type ProjectController struct {
	projects     *repositories.ProjectRepository
	applications *repositories.ApplicationRepository
	users        *repositories.UserRepository
	logger       zerolog.Logger
}

// NewProjectController creates a new ProjectController
func NewProjectController(repos *repositories.Repositories, logger zerolog.Logger) *ProjectController {
	return &ProjectController{
		projects:     repos.Projects,
		applications: repos.Applications,
		users:        repos.Users,
		logger:       logger,
	}
}

// CreateProject posts a new project owned by the caller. Faculty only.
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	uid, _ := middleware.CurrentUser(ctx)

	project, err := c.projects.Create(ctx.Request.Context(), models.Project{
		Name:           req.Name,
		ShortDesc:      req.ShortDesc,
		LongDesc:       req.LongDesc,
		IsActive:       req.IsActive,
		Tags:           req.Tags,
		Creator:        uid,
		WorkingUsers:   req.WorkingUsers,
		FieldOfStudy:   req.FieldOfStudy,
		Specialization: req.Specialization,
		Duration:       req.Duration,
		PositionType:   req.PositionType,
		Deadline:       req.Deadline,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("pid", project.PID).Str("creator", uid).Msg("Project created")
	ctx.JSON(http.StatusCreated, project)
}

// ListProjects returns every project with its creator
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	projects := c.withCreators(ctx.Request.Context(), c.projects.List(ctx.Request.Context()))
	ctx.JSON(http.StatusOK, dto.ProjectListResponse{Projects: projects, Count: len(projects)})
}

// ListProjectsForStudent pages through the active projects plus the ones the caller applied to
func (c *ProjectController) ListProjectsForStudent(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	page, size := helpers.ParsePaginationParams(ctx)

	applied := make(map[string]bool)
	for _, app := range c.applications.ListByUser(ctx.Request.Context(), uid) {
		applied[app.PID] = true
	}

	projects, total := c.projects.ListVisible(ctx.Request.Context(), applied, page, size)
	projects = c.withCreators(ctx.Request.Context(), projects)
	ctx.JSON(http.StatusOK, dto.StudentProjectsResponse{
		Projects: projects,
		Count:    len(projects),
		Total:    total,
		Page:     page,
		PageSize: size,
	})
}

// GetMyProjects returns the caller's own projects
func (c *ProjectController) GetMyProjects(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	projects := c.projects.ListByCreator(ctx.Request.Context(), uid)
	ctx.JSON(http.StatusOK, dto.ProjectListResponse{Projects: projects, Count: len(projects)})
}

// GetProject returns one project with its creator embedded
func (c *ProjectController) GetProject(ctx *gin.Context) {
	project, err := c.projects.FindByPID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.withCreator(ctx.Request.Context(), project))
}

// UpdateProject changes the fields present in the body. Owner only.
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	var req dto.UpdateProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	uid, _ := middleware.CurrentUser(ctx)

	project, err := c.projects.Update(ctx.Request.Context(), ctx.Param("id"), func(p *models.Project) error {
		if p.Creator != uid {
			return apperrors.NewResourceNotFoundError("Project not found or you don't have permission to edit it")
		}
		applyProjectUpdate(p, req)
		return nil
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProjectResponse{Message: "Project updated successfully", Project: project})
}

func applyProjectUpdate(p *models.Project, req dto.UpdateProjectRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.ShortDesc != nil {
		p.ShortDesc = *req.ShortDesc
	}
	if req.LongDesc != nil {
		p.LongDesc = *req.LongDesc
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.FieldOfStudy != nil {
		p.FieldOfStudy = *req.FieldOfStudy
	}
	if req.Specialization != nil {
		p.Specialization = *req.Specialization
	}
	if req.Duration != nil {
		p.Duration = *req.Duration
	}
	if req.PositionType != nil {
		p.PositionType = *req.PositionType
	}
	if req.Deadline != nil {
		p.Deadline = *req.Deadline
	}
}

// DeleteProject removes a project and its applications. Owner only.
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	pid := ctx.Param("id")
	if _, err := c.ownedProject(ctx, pid, "Project not found or you don't have permission to delete it"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.projects.Delete(ctx.Request.Context(), pid); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.applications.DeleteByProject(ctx.Request.Context(), pid)

	c.logger.Info().Str("pid", pid).Msg("Project deleted")
	ctx.JSON(http.StatusOK, dto.DeleteProjectResponse{Message: "Project deleted successfully", ProjectID: pid})
}

// GetProjectWorkingUsers lists the team. Visible to the owner and the team itself.
func (c *ProjectController) GetProjectWorkingUsers(ctx *gin.Context) {
	project, err := c.projects.FindByPID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	uid, _ := middleware.CurrentUser(ctx)
	if project.Creator != uid && !project.HasMember(uid) {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("You don't have permission to view this project's working users"))
		return
	}

	members := make([]models.WorkingUser, 0, len(project.WorkingUsers))
	for _, memberUID := range project.WorkingUsers {
		u, err := c.users.FindByUID(ctx.Request.Context(), memberUID)
		if err != nil {
			continue
		}
		members = append(members, models.WorkingUser{UID: u.UID, Name: u.Name, Email: u.Email, Type: u.Type})
	}
	ctx.JSON(http.StatusOK, dto.WorkingUsersResponse{WorkingUsers: members, Count: len(members)})
}

// RemoveWorkingUser takes a member off the team and rejects their application. Owner only.
func (c *ProjectController) RemoveWorkingUser(ctx *gin.Context) {
	pid, member := ctx.Param("id"), ctx.Param("uid")
	if _, err := c.ownedProject(ctx, pid, "You don't have permission to remove users from this project"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.projects.RemoveWorkingUser(ctx.Request.Context(), pid, member); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.applications.SetStatusFor(ctx.Request.Context(), pid, member, models.StatusRejected)

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User removed from project successfully"})
}

// ownedProject loads pid and checks the caller created it
func (c *ProjectController) ownedProject(ctx *gin.Context, pid, denied string) (models.Project, error) {
	return ownedProject(ctx, c.projects, pid, denied)
}

func ownedProject(ctx *gin.Context, projects *repositories.ProjectRepository, pid, denied string) (models.Project, error) {
	project, err := projects.FindByPID(ctx.Request.Context(), pid)
	if err != nil {
		return models.Project{}, err
	}
	uid, _ := middleware.CurrentUser(ctx)
	if project.Creator != uid {
		return models.Project{}, apperrors.NewForbiddenError(denied)
	}
	return project, nil
}

func (c *ProjectController) withCreator(ctx context.Context, p models.Project) models.Project {
	if u, err := c.users.FindByUID(ctx, p.Creator); err == nil {
		p.User = &u
	}
	return p
}

func (c *ProjectController) withCreators(ctx context.Context, projects []models.Project) []models.Project {
	for i := range projects {
		projects[i] = c.withCreator(ctx, projects[i])
	}
	return projects
}
