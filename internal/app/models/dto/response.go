package dto

import "github.com/yigit/researchconnect/internal/app/models"

// MessageResponse represents a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// ProjectResponse wraps a single project
type ProjectResponse struct {
	Message string         `json:"message,omitempty"`
	Project models.Project `json:"project"`
}

// ProjectListResponse is returned by /projects and /projects/my
type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Count    int              `json:"count"`
}

// StudentProjectsResponse is the paginated student listing
type StudentProjectsResponse struct {
	Projects []models.Project `json:"projects"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// DeleteProjectResponse confirms a deletion
type DeleteProjectResponse struct {
	Message   string `json:"message"`
	ProjectID string `json:"projectId"`
}

// WorkingUsersResponse lists a project team
type WorkingUsersResponse struct {
	WorkingUsers []models.WorkingUser `json:"workingUsers"`
	Count        int                  `json:"count"`
}

// ApplicationResponse wraps a single application
type ApplicationResponse struct {
	Message     string             `json:"message"`
	Application models.Application `json:"application"`
}

// ApplicationsResponse lists applications
type ApplicationsResponse struct {
	Applications []models.Application `json:"applications"`
	Count        int                  `json:"count"`
}

// AppliedProjectsResponse is the lightweight applied-projects list
type AppliedProjectsResponse struct {
	AppliedProjects []models.AppliedProject `json:"appliedProjects"`
	Count           int                     `json:"count"`
}

// ApplicationStatusResponse reports whether the caller applied to a project
type ApplicationStatusResponse struct {
	HasApplied  bool                `json:"hasApplied"`
	Application *models.Application `json:"application"`
}

// AllApplicationsResponse groups a faculty member's applications per project
type AllApplicationsResponse struct {
	Projects []models.ProjectApplications `json:"projects"`
	Total    int                          `json:"total"`
}

// StudentProfileResponse wraps the caller's student profile
type StudentProfileResponse struct {
	Message string                `json:"message,omitempty"`
	Student models.StudentProfile `json:"student"`
}

// RecommendationsResponse lists scored projects
type RecommendationsResponse struct {
	Recommendations []models.RecommendedProject `json:"recommendations"`
	Count           int                         `json:"count"`
}

// ExploreResponse lists discoverable users
type ExploreResponse struct {
	Users []models.ExploreUser `json:"users"`
	Count int                  `json:"count"`
}

// PreferencesResponse is returned when research preferences are saved
type PreferencesResponse struct {
	Message     string                    `json:"message"`
	Preferences models.RoadmapPreferences `json:"preferences"`
}

// PlacementPreferencesResponse is returned when placement preferences are saved
type PlacementPreferencesResponse struct {
	Message     string                      `json:"message"`
	Preferences models.PlacementPreferences `json:"preferences"`
}

// RoadmapResponse is returned by the generate endpoints
type RoadmapResponse struct {
	Message   string         `json:"message"`
	Roadmap   models.Roadmap `json:"roadmap"`
	Cached    bool           `json:"cached"`
	RoadmapID uint           `json:"roadmapId"`
}
