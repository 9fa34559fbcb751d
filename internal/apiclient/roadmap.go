package apiclient

import (
	"context"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
)

// SavePreferences stores the research questionnaire
func (c *Client) SavePreferences(ctx context.Context, prefs models.RoadmapPreferences) (*models.RoadmapPreferences, error) {
	var out dto.PreferencesResponse
	if err := c.post(ctx, "/roadmap/preferences", prefs, &out); err != nil {
		return nil, err
	}
	return &out.Preferences, nil
}

// Preferences returns the stored research questionnaire
func (c *Client) Preferences(ctx context.Context) (*models.RoadmapPreferences, error) {
	var out models.RoadmapPreferences
	if err := c.get(ctx, "/roadmap/preferences", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateRoadmap builds a research roadmap from the stored preferences
func (c *Client) GenerateRoadmap(ctx context.Context) (*dto.RoadmapResponse, error) {
	var out dto.RoadmapResponse
	if err := c.post(ctx, "/roadmap/generate", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RoadmapHistory lists previously generated roadmaps, newest first
func (c *Client) RoadmapHistory(ctx context.Context) ([]models.RoadmapRecord, error) {
	var out []models.RoadmapRecord
	if err := c.get(ctx, "/roadmap/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SavePlacementPreferences stores the placement questionnaire
func (c *Client) SavePlacementPreferences(ctx context.Context, prefs models.PlacementPreferences) (*models.PlacementPreferences, error) {
	var out dto.PlacementPreferencesResponse
	if err := c.post(ctx, "/roadmap/placement/preferences", prefs, &out); err != nil {
		return nil, err
	}
	return &out.Preferences, nil
}

// PlacementPreferences returns the stored placement questionnaire
func (c *Client) PlacementPreferences(ctx context.Context) (*models.PlacementPreferences, error) {
	var out models.PlacementPreferences
	if err := c.get(ctx, "/roadmap/placement/preferences", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePlacementRoadmap builds a placement roadmap from the stored preferences
func (c *Client) GeneratePlacementRoadmap(ctx context.Context) (*dto.RoadmapResponse, error) {
	var out dto.RoadmapResponse
	if err := c.post(ctx, "/roadmap/placement/generate", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
