package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/app/repositories"
	"github.com/yigit/researchconnect/internal/app/services"
	"github.com/yigit/researchconnect/internal/middleware"
)

// ProfileController serves student CVs, public profiles and the explore listing
type ProfileController struct {
	users           *repositories.UserRepository
	profiles        *repositories.ProfileRepository
	projects        *repositories.ProjectRepository
	applications    *repositories.ApplicationRepository
	roadmaps        *repositories.RoadmapRepository
	recommendations *services.RecommendationService
	logger          zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(repos *repositories.Repositories, recommendations *services.RecommendationService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		users:           repos.Users,
		profiles:        repos.Profiles,
		projects:        repos.Projects,
		applications:    repos.Applications,
		roadmaps:        repos.Roadmaps,
		recommendations: recommendations,
		logger:          logger,
	}
}

// GetStudentProfile returns the caller's profile
func (c *ProfileController) GetStudentProfile(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	profile, err := c.profiles.Get(ctx.Request.Context(), uid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentProfileResponse{Student: profile})
}

// UpdateStudentProfile creates or replaces the caller's profile
func (c *ProfileController) UpdateStudentProfile(ctx *gin.Context) {
	var req models.StudentProfile
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	uid, _ := middleware.CurrentUser(ctx)

	profile, created := c.profiles.Upsert(ctx.Request.Context(), uid, req)
	if created {
		ctx.JSON(http.StatusCreated, dto.StudentProfileResponse{Message: "Student profile created successfully", Student: profile})
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentProfileResponse{Message: "Student profile updated successfully", Student: profile})
}

// GetRecommendations ranks the open projects against the caller's profile and research preferences
func (c *ProfileController) GetRecommendations(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	profile, err := c.profiles.Get(ctx.Request.Context(), uid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	in := services.RecommendationInput{
		Student:  profile,
		Projects: c.projects.ListActive(ctx.Request.Context()),
		Applied:  make(map[string]bool),
	}
	if prefs, err := c.roadmaps.Preferences(ctx.Request.Context(), uid); err == nil {
		in.Preferences = &prefs
	}
	for _, app := range c.applications.ListByUser(ctx.Request.Context(), uid) {
		in.Applied[app.PID] = true
	}

	recs := c.recommendations.Recommend(in)
	c.logger.Debug().Str("uid", uid).Int("count", len(recs)).Msg("Recommendations computed")
	ctx.JSON(http.StatusOK, dto.RecommendationsResponse{Recommendations: recs, Count: len(recs)})
}

// GetUserProfile returns the public profile of any user
func (c *ProfileController) GetUserProfile(ctx *gin.Context) {
	user, err := c.users.FindByUID(ctx.Request.Context(), ctx.Param("uid"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := models.UserProfile{UID: user.UID, Name: user.Name, Email: user.Email, Type: user.Type}
	if user.Type == models.UserTypeStudent {
		if profile, ok := c.profiles.Find(ctx.Request.Context(), user.UID); ok {
			out.Student = &profile
		}
	}
	ctx.JSON(http.StatusOK, out)
}

// Explore lists verified users, optionally filtered by type and a free-text search.
// Students who turned discovery off are left out.
func (c *ProfileController) Explore(ctx *gin.Context) {
	var query dto.ExploreQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	self, _ := middleware.CurrentUser(ctx)
	search := strings.ToLower(strings.TrimSpace(query.Search))

	users := make([]models.ExploreUser, 0)
	for _, u := range c.users.List(ctx.Request.Context()) {
		if u.UID == self || !u.EmailVerified {
			continue
		}
		if query.Type != "" && string(u.Type) != query.Type {
			continue
		}

		card := models.ExploreUser{UID: u.UID, Name: u.Name, Email: u.Email, Type: u.Type}
		if profile, ok := c.profiles.Find(ctx.Request.Context(), u.UID); ok {
			if !profile.Discoverable() {
				continue
			}
			card.Institution = profile.Institution
			card.Degree = profile.Degree
			card.Location = profile.Location
			card.Skills = profile.Skills
			card.ResearchInterest = profile.ResearchInterest
		}
		if search != "" && !matchesSearch(card, search) {
			continue
		}
		users = append(users, card)
	}
	ctx.JSON(http.StatusOK, dto.ExploreResponse{Users: users, Count: len(users)})
}

func matchesSearch(u models.ExploreUser, search string) bool {
	fields := append([]string{u.Name, u.Email, u.Institution, u.Degree, u.ResearchInterest}, u.Skills...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
