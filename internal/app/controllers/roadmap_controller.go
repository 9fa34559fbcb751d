package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/app/repositories"
	"github.com/yigit/researchconnect/internal/app/services"
	"github.com/yigit/researchconnect/internal/middleware"
)

// RoadmapController handles the research and placement questionnaires and roadmap generation
type RoadmapController struct {
	roadmaps  *repositories.RoadmapRepository
	generator *services.RoadmapService
	cooldown  *middleware.Cooldown
	logger    zerolog.Logger
}

// NewRoadmapController creates a new RoadmapController. cooldown may be nil.
func NewRoadmapController(repos *repositories.Repositories, generator *services.RoadmapService, cooldown *middleware.Cooldown, logger zerolog.Logger) *RoadmapController {
	return &RoadmapController{
		roadmaps:  repos.Roadmaps,
		generator: generator,
		cooldown:  cooldown,
		logger:    logger,
	}
}

// PlacementCooldown spaces out one user's placement roadmap requests
func (c *RoadmapController) PlacementCooldown() gin.HandlerFunc {
	return c.cooldown.Handler()
}

// SavePreferences stores the caller's research questionnaire
func (c *RoadmapController) SavePreferences(ctx *gin.Context) {
	var req models.RoadmapPreferences
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	uid, _ := middleware.CurrentUser(ctx)

	if c.roadmaps.SavePreferences(ctx.Request.Context(), uid, req) {
		ctx.JSON(http.StatusCreated, dto.PreferencesResponse{Message: "Preferences saved successfully", Preferences: req})
		return
	}
	ctx.JSON(http.StatusOK, dto.PreferencesResponse{Message: "Preferences updated successfully", Preferences: req})
}

// GetPreferences returns the caller's research questionnaire
func (c *RoadmapController) GetPreferences(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	prefs, err := c.roadmaps.Preferences(ctx.Request.Context(), uid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, prefs)
}

// SavePlacementPreferences stores the caller's placement questionnaire
func (c *RoadmapController) SavePlacementPreferences(ctx *gin.Context) {
	var req models.PlacementPreferences
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	uid, _ := middleware.CurrentUser(ctx)

	if c.roadmaps.SavePlacementPreferences(ctx.Request.Context(), uid, req) {
		ctx.JSON(http.StatusCreated, dto.PlacementPreferencesResponse{Message: "Placement preferences saved successfully", Preferences: req})
		return
	}
	ctx.JSON(http.StatusOK, dto.PlacementPreferencesResponse{Message: "Placement preferences updated successfully", Preferences: req})
}

// GetPlacementPreferences returns the caller's placement questionnaire
func (c *RoadmapController) GetPlacementPreferences(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	prefs, err := c.roadmaps.PlacementPreferences(ctx.Request.Context(), uid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, prefs)
}

// GenerateRoadmap builds a research roadmap from the stored questionnaire
func (c *RoadmapController) GenerateRoadmap(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	prefs, err := c.roadmaps.Preferences(ctx.Request.Context(), uid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.generate(ctx, models.RoadmapResearch, prefs, func() models.Roadmap { return c.generator.Research(prefs) })
}

// GeneratePlacementRoadmap builds a placement roadmap from the stored questionnaire
func (c *RoadmapController) GeneratePlacementRoadmap(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	prefs, err := c.roadmaps.PlacementPreferences(ctx.Request.Context(), uid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.generate(ctx, models.RoadmapPlacement, prefs, func() models.Roadmap { return c.generator.Placement(prefs) })
}

// generate answers from the caller's placement history, then from the shared cache,
// and only then builds. Concurrent builds for the same preferences run once.
func (c *RoadmapController) generate(ctx *gin.Context, kind string, prefs interface{}, build func() models.Roadmap) {
	reqCtx := ctx.Request.Context()
	uid, _ := middleware.CurrentUser(ctx)
	hash, err := services.PreferenceHash(prefs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if kind == models.RoadmapPlacement {
		if rec, ok := c.roadmaps.FindByHash(reqCtx, uid, kind, hash); ok {
			c.respond(ctx, "Placement roadmap retrieved from your history", rec, true)
			return
		}
	}

	if data, ok := c.roadmaps.CachedRoadmap(reqCtx, kind, hash); ok {
		rec, err := c.record(reqCtx, uid, kind, hash, data, services.CachedBy)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		c.logger.Debug().Str("uid", uid).Str("kind", kind).Int("usage", c.roadmaps.CacheUsage(reqCtx, kind, hash)).Msg("Roadmap served from cache")
		c.respond(ctx, "Roadmap retrieved from cache", rec, true)
		return
	}

	generatedBy := services.SharedBy
	data, err := c.generator.Dedupe(kind, hash, func() (string, error) {
		// a request that finished just before this one may have filled the cache
		if data, ok := c.roadmaps.CachedRoadmap(reqCtx, kind, hash); ok {
			generatedBy = services.CachedBy
			return data, nil
		}
		raw, err := json.Marshal(build())
		if err != nil {
			return "", fmt.Errorf("failed to encode roadmap: %w", err)
		}
		c.roadmaps.CacheRoadmap(reqCtx, kind, hash, string(raw))
		generatedBy = services.GeneratedBy
		return string(raw), nil
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rec, err := c.record(reqCtx, uid, kind, hash, data, generatedBy)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Str("uid", uid).Str("kind", kind).Str("generatedBy", generatedBy).Uint("roadmapId", rec.ID).Msg("Roadmap generated")
	c.respond(ctx, "Roadmap generated successfully", rec, false)
}

// record adds data to uid's history
func (c *RoadmapController) record(ctx context.Context, uid, kind, hash, data, generatedBy string) (models.RoadmapRecord, error) {
	var roadmap models.Roadmap
	if err := json.Unmarshal([]byte(data), &roadmap); err != nil {
		return models.RoadmapRecord{}, fmt.Errorf("stored roadmap is unreadable: %w", err)
	}
	return c.roadmaps.AddRecord(ctx, models.RoadmapRecord{
		UserID:         uid,
		RoadmapType:    kind,
		PreferenceHash: hash,
		Title:          roadmap.Title,
		RoadmapData:    data,
		GeneratedBy:    generatedBy,
	}), nil
}

func (c *RoadmapController) respond(ctx *gin.Context, message string, rec models.RoadmapRecord, cached bool) {
	var roadmap models.Roadmap
	if err := json.Unmarshal([]byte(rec.RoadmapData), &roadmap); err != nil {
		middleware.HandleAPIError(ctx, fmt.Errorf("stored roadmap is unreadable: %w", err))
		return
	}
	ctx.JSON(http.StatusOK, dto.RoadmapResponse{Message: message, Roadmap: roadmap, Cached: cached, RoadmapID: rec.ID})
}

// GetHistory lists the caller's generated roadmaps, newest first
func (c *RoadmapController) GetHistory(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	ctx.JSON(http.StatusOK, c.roadmaps.History(ctx.Request.Context(), uid))
}
