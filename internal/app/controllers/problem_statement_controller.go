package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/app/repositories"
	"github.com/yigit/researchconnect/internal/middleware"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

// ProblemStatementController handles the problem statement board
type ProblemStatementController struct {
	statements *repositories.ProblemStatementRepository
	users      *repositories.UserRepository
	logger     zerolog.Logger
}

// NewProblemStatementController creates a new ProblemStatementController
func NewProblemStatementController(repos *repositories.Repositories, logger zerolog.Logger) *ProblemStatementController {
	return &ProblemStatementController{
		statements: repos.ProblemStatements,
		users:      repos.Users,
		logger:     logger,
	}
}

// CreateProblemStatement posts a problem statement owned by the caller
func (c *ProblemStatementController) CreateProblemStatement(ctx *gin.Context) {
	var req dto.CreateProblemStatementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	uid, _ := middleware.CurrentUser(ctx)

	ps, err := c.statements.Create(ctx.Request.Context(), models.ProblemStatement{
		Title:        req.Title,
		Description:  req.Description,
		Theme:        req.Theme,
		Category:     req.Category,
		UploadedBy:   uid,
		Organization: req.Organization,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("psid", ps.PSID).Str("uploader", uid).Msg("Problem statement created")
	ctx.JSON(http.StatusCreated, dto.ProblemStatementResponse{Message: "Problem statement created successfully", ProblemStatement: ps})
}

// ListProblemStatements returns a summary of every problem statement
func (c *ProblemStatementController) ListProblemStatements(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, summaries(c.statements.List(ctx.Request.Context()), ""))
}

// SearchProblemStatements filters by category
func (c *ProblemStatementController) SearchProblemStatements(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Query("category"))
	if category == "" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Category parameter is required"))
		return
	}
	ctx.JSON(http.StatusOK, summaries(c.statements.SearchByCategory(ctx.Request.Context(), category), category))
}

// GetProblemStatement looks up by psid or numeric id
func (c *ProblemStatementController) GetProblemStatement(ctx *gin.Context) {
	ps, err := c.statements.Find(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.withUploader(ctx.Request.Context(), ps))
}

// GetMyProblemStatements returns the caller's uploads in full
func (c *ProblemStatementController) GetMyProblemStatements(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	mine := c.statements.ListByUploader(ctx.Request.Context(), uid)
	ctx.JSON(http.StatusOK, dto.ProblemStatementsResponse{ProblemStatements: mine, Count: len(mine)})
}

// UpdateProblemStatement changes the fields present in the body. Uploader only.
func (c *ProblemStatementController) UpdateProblemStatement(ctx *gin.Context) {
	var req dto.UpdateProblemStatementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	uid, _ := middleware.CurrentUser(ctx)

	ps, err := c.statements.Update(ctx.Request.Context(), ctx.Param("id"), func(ps *models.ProblemStatement) error {
		if ps.UploadedBy != uid {
			return apperrors.NewForbiddenError("You can only update your own problem statements")
		}
		applyProblemStatementUpdate(ps, req)
		return nil
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProblemStatementResponse{Message: "Problem statement updated successfully", ProblemStatement: ps})
}

func applyProblemStatementUpdate(ps *models.ProblemStatement, req dto.UpdateProblemStatementRequest) {
	set := func(dst *string, src *string) {
		if src != nil && strings.TrimSpace(*src) != "" {
			*dst = *src
		}
	}
	set(&ps.Title, req.Title)
	set(&ps.Description, req.Description)
	set(&ps.Theme, req.Theme)
	set(&ps.Category, req.Category)
	set(&ps.Organization, req.Organization)
}

// DeleteProblemStatement removes a problem statement. Uploader or any faculty member.
func (c *ProblemStatementController) DeleteProblemStatement(ctx *gin.Context) {
	uid, userType := middleware.CurrentUser(ctx)

	ps, err := c.statements.Delete(ctx.Request.Context(), ctx.Param("id"), func(ps models.ProblemStatement) error {
		if ps.UploadedBy != uid && userType != models.UserTypeFaculty {
			return apperrors.NewForbiddenError("You can only delete your own problem statements")
		}
		return nil
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("psid", ps.PSID).Str("by", uid).Msg("Problem statement deleted")
	ctx.JSON(http.StatusOK, dto.DeleteProblemStatementResponse{Message: "Problem statement deleted successfully", PSID: ps.PSID})
}

func (c *ProblemStatementController) withUploader(ctx context.Context, ps models.ProblemStatement) models.ProblemStatementDetail {
	detail := models.ProblemStatementDetail{ProblemStatement: ps}
	if u, err := c.users.FindByUID(ctx, ps.UploadedBy); err == nil {
		detail.Uploader = &models.Uploader{Name: u.Name, Email: u.Email, Type: u.Type}
	}
	return detail
}

func summaries(list []models.ProblemStatement, category string) dto.ProblemStatementSummariesResponse {
	out := make([]models.ProblemStatementSummary, len(list))
	for i, ps := range list {
		out[i] = ps.Summary()
	}
	return dto.ProblemStatementSummariesResponse{ProblemStatements: out, Category: category, Count: len(out)}
}
