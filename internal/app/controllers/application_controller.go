package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/app/repositories"
	"github.com/yigit/researchconnect/internal/middleware"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
	"github.com/yigit/researchconnect/internal/pkg/email"
)

// ApplicationController handles applying to projects and reviewing applications
type ApplicationController struct {
	projects     *repositories.ProjectRepository
	applications *repositories.ApplicationRepository
	users        *repositories.UserRepository
	mailer       email.EmailService
	logger       zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(repos *repositories.Repositories, mailer email.EmailService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		projects:     repos.Projects,
		applications: repos.Applications,
		users:        repos.Users,
		mailer:       mailer,
		logger:       logger,
	}
}

// Apply submits the caller's application to an active project
func (c *ApplicationController) Apply(ctx *gin.Context) {
	var req dto.ApplyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	uid, _ := middleware.CurrentUser(ctx)

	project, err := c.projects.FindByPID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil || !project.IsActive {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("Project not found or not active"))
		return
	}

	app, err := c.applications.Create(ctx.Request.Context(), models.Application{
		PID:              project.PID,
		UID:              uid,
		Availability:     req.Availability,
		Motivation:       req.Motivation,
		PriorProjects:    req.PriorProjects,
		CVLink:           req.CVLink,
		PublicationsLink: req.PublicationsLink,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if creator, err := c.users.FindByUID(ctx.Request.Context(), project.Creator); err == nil {
		body := fmt.Sprintf("A new application was submitted to %s.", project.Name)
		if err := c.mailer.SendApplicationUpdate(creator.Email, creator.Name, project.Name, "New application received", body); err != nil {
			c.logger.Warn().Err(err).Str("pid", project.PID).Msg("Failed to notify project owner")
		}
	}

	c.logger.Info().Str("pid", project.PID).Str("uid", uid).Uint("applicationId", app.ID).Msg("Application submitted")
	ctx.JSON(http.StatusCreated, dto.ApplicationResponse{Message: "Application submitted successfully", Application: app})
}

// Retract withdraws the caller's application unless it was already accepted
func (c *ApplicationController) Retract(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	app, ok := c.applications.FindByProjectAndUser(ctx.Request.Context(), ctx.Param("id"), uid)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("Application not found"))
		return
	}
	if app.Status == models.StatusAccepted {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Cannot retract an accepted application"))
		return
	}

	if err := c.applications.Delete(ctx.Request.Context(), app.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Application retracted successfully"})
}

// ApplicationStatus reports whether the caller applied to the project
func (c *ApplicationController) ApplicationStatus(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	app, ok := c.applications.FindByProjectAndUser(ctx.Request.Context(), ctx.Param("id"), uid)
	if !ok {
		ctx.JSON(http.StatusOK, dto.ApplicationStatusResponse{HasApplied: false})
		return
	}
	ctx.JSON(http.StatusOK, dto.ApplicationStatusResponse{HasApplied: true, Application: &app})
}

// ProjectApplications lists every application to a project the caller owns
func (c *ApplicationController) ProjectApplications(ctx *gin.Context) {
	c.listForOwner(ctx, func(models.Application) bool { return true })
}

// PastApplicants lists the decided applications of a project the caller owns
func (c *ApplicationController) PastApplicants(ctx *gin.Context) {
	c.listForOwner(ctx, func(a models.Application) bool { return a.Status.IsFinal() })
}

func (c *ApplicationController) listForOwner(ctx *gin.Context, keep func(models.Application) bool) {
	project, err := ownedProject(ctx, c.projects, ctx.Param("id"), "You don't have permission to view applications for this project")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	apps := make([]models.Application, 0)
	for _, app := range c.applications.ListByProject(ctx.Request.Context(), project.PID) {
		if keep(app) {
			apps = append(apps, c.withApplicant(ctx, app))
		}
	}
	ctx.JSON(http.StatusOK, dto.ApplicationsResponse{Applications: apps, Count: len(apps)})
}

// MyApplications lists the caller's applications with their projects
func (c *ApplicationController) MyApplications(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	apps := c.applications.ListByUser(ctx.Request.Context(), uid)
	for i := range apps {
		if project, err := c.projects.FindByPID(ctx.Request.Context(), apps[i].PID); err == nil {
			apps[i].Project = &project
		}
	}
	ctx.JSON(http.StatusOK, dto.ApplicationsResponse{Applications: apps, Count: len(apps)})
}

// MyAppliedProjects lists (pid, status) for the caller's applications
func (c *ApplicationController) MyAppliedProjects(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	apps := c.applications.ListByUser(ctx.Request.Context(), uid)
	applied := make([]models.AppliedProject, 0, len(apps))
	for _, app := range apps {
		applied = append(applied, models.AppliedProject{PID: app.PID, Status: app.Status})
	}
	ctx.JSON(http.StatusOK, dto.AppliedProjectsResponse{AppliedProjects: applied, Count: len(applied)})
}

// AllApplications groups applications to the caller's projects per project
func (c *ApplicationController) AllApplications(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)

	groups := make([]models.ProjectApplications, 0)
	total := 0
	for _, project := range c.projects.ListByCreator(ctx.Request.Context(), uid) {
		apps := c.applications.ListByProject(ctx.Request.Context(), project.PID)
		for i := range apps {
			apps[i] = c.withApplicant(ctx, apps[i])
		}
		total += len(apps)
		groups = append(groups, models.ProjectApplications{Project: project, Applications: apps})
	}
	ctx.JSON(http.StatusOK, dto.AllApplicationsResponse{Projects: groups, Total: total})
}

// UpdateStatus moves an application to a new status. Accepting adds the student to the team.
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	var req dto.StatusUpdateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	status := models.ApplicationStatus(req.Status)
	if !status.IsValid() {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid status"))
		return
	}

	project, app, ok := c.reviewTarget(ctx)
	if !ok {
		return
	}

	app, err := c.applications.Update(ctx.Request.Context(), app.ID, func(a *models.Application) error {
		a.Status = status
		return nil
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if status == models.StatusAccepted {
		if err := c.projects.AddWorkingUser(ctx.Request.Context(), project.PID, app.UID); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	c.notifyApplicant(ctx, project, app, "Application status updated",
		fmt.Sprintf("Your application to %s is now %s.", project.Name, status))
	ctx.JSON(http.StatusOK, dto.ApplicationResponse{Message: "Application status updated successfully", Application: app})
}

// Feedback attaches reviewer feedback to an application
func (c *ApplicationController) Feedback(ctx *gin.Context) {
	var req dto.FeedbackRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	project, app, ok := c.reviewTarget(ctx)
	if !ok {
		return
	}

	app, err := c.applications.Update(ctx.Request.Context(), app.ID, func(a *models.Application) error {
		a.Feedback = req.Feedback
		return nil
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.notifyApplicant(ctx, project, app, "Feedback on your application", req.Feedback)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Feedback sent successfully"})
}

// ScheduleInterview records the interview slot and sets the status to interview
func (c *ApplicationController) ScheduleInterview(ctx *gin.Context) {
	var req dto.InterviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	project, app, ok := c.reviewTarget(ctx)
	if !ok {
		return
	}

	app, err := c.applications.Update(ctx.Request.Context(), app.ID, func(a *models.Application) error {
		a.Status = models.StatusInterview
		a.InterviewDate = req.InterviewDate
		a.InterviewTime = req.InterviewTime
		a.InterviewDetails = req.InterviewDetails
		return nil
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.notifyApplicant(ctx, project, app, "Interview scheduled",
		fmt.Sprintf("Your interview for %s is on %s at %s.", project.Name, req.InterviewDate, req.InterviewTime))
	ctx.JSON(http.StatusOK, dto.ApplicationResponse{Message: "Interview scheduled successfully", Application: app})
}

// reviewTarget resolves the project and application named in the path.
// It writes the error response itself and reports false on failure.
func (c *ApplicationController) reviewTarget(ctx *gin.Context) (models.Project, models.Application, bool) {
	project, err := ownedProject(ctx, c.projects, ctx.Param("id"), "You don't have permission to manage applications for this project")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return models.Project{}, models.Application{}, false
	}

	id, err := strconv.ParseUint(ctx.Param("appId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid application ID"))
		return models.Project{}, models.Application{}, false
	}
	app, err := c.applications.FindByID(ctx.Request.Context(), project.PID, uint(id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return models.Project{}, models.Application{}, false
	}
	return project, app, true
}

func (c *ApplicationController) withApplicant(ctx *gin.Context, app models.Application) models.Application {
	if u, err := c.users.FindByUID(ctx.Request.Context(), app.UID); err == nil {
		app.User = &u
	}
	return app
}

func (c *ApplicationController) notifyApplicant(ctx *gin.Context, project models.Project, app models.Application, subject, body string) {
	student, err := c.users.FindByUID(ctx.Request.Context(), app.UID)
	if err != nil {
		return
	}
	if err := c.mailer.SendApplicationUpdate(student.Email, student.Name, project.Name, subject, body); err != nil {
		c.logger.Warn().Err(err).Uint("applicationId", app.ID).Msg("Failed to notify applicant")
	}
}
