package models

import "time"

// Roadmap kinds
const (
	RoadmapResearch  = "research"
	RoadmapPlacement = "placement"
)

// RoadmapPreferences is the research questionnaire
type RoadmapPreferences struct {
	FieldOfStudy    string `json:"field_of_study" yaml:"field_of_study" binding:"required"`
	ExperienceLevel string `json:"experience_level" yaml:"experience_level" binding:"required"`
	CurrentYear     int    `json:"current_year" yaml:"current_year"`
	Goals           string `json:"goals" yaml:"goals" binding:"required"`
	TimeCommitment  int    `json:"time_commitment" yaml:"time_commitment" binding:"gte=0"`
	InterestAreas   string `json:"interest_areas" yaml:"interest_areas" binding:"required"`
	PriorExperience string `json:"prior_experience,omitempty" yaml:"prior_experience,omitempty"`
}

// PlacementPreferences is the placement-prep questionnaire.
// PrepAreas, CurrentLevels, ResourcesStarted and TargetCompanies are JSON documents.
type PlacementPreferences struct {
	TimelineWeeks    int    `json:"timeline_weeks" yaml:"timeline_weeks" binding:"gt=0"`
	TimeCommitment   int    `json:"time_commitment" yaml:"time_commitment" binding:"gte=0"`
	IntensityType    string `json:"intensity_type" yaml:"intensity_type" binding:"required,oneof=regular intense weekend"`
	PrepAreas        string `json:"prep_areas" yaml:"prep_areas" binding:"required"`
	CurrentLevels    string `json:"current_levels" yaml:"current_levels" binding:"required"`
	ResourcesStarted string `json:"resources_started,omitempty" yaml:"resources_started,omitempty"`
	TargetCompanies  string `json:"target_companies,omitempty" yaml:"target_companies,omitempty"`
	SpecialNeeds     string `json:"special_needs,omitempty" yaml:"special_needs,omitempty"`
	Goals            string `json:"goals" yaml:"goals" binding:"required"`
}

// RoadmapNode is one step of a roadmap
type RoadmapNode struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Duration    string   `json:"duration"`
	Resources   []string `json:"resources"`
	Skills      []string `json:"skills"`
	NextNodes   []string `json:"next_nodes"`
}

// Roadmap is a generated learning plan
type Roadmap struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	TotalTime   string        `json:"total_time"`
	Nodes       []RoadmapNode `json:"nodes"`
}

// RoadmapRecord is a history entry. RoadmapData holds the Roadmap as a JSON document.
type RoadmapRecord struct {
	ID             uint      `json:"id"`
	UserID         string    `json:"user_id"`
	RoadmapType    string    `json:"roadmap_type"`
	PreferenceHash string    `json:"preference_hash"`
	Title          string    `json:"title"`
	RoadmapData    string    `json:"roadmap_data"`
	GeneratedBy    string    `json:"generated_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
