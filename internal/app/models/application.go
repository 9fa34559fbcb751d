package models

import "time"

// Application is a student's request to join a project
type Application struct {
	ID               uint              `json:"ID"`
	CreatedAt        time.Time         `json:"CreatedAt"`
	UpdatedAt        time.Time         `json:"UpdatedAt"`
	TimeCreated      time.Time         `json:"timeCreated"`
	PID              string            `json:"pid"`
	UID              string            `json:"uid"`
	Status           ApplicationStatus `json:"status"`
	Availability     string            `json:"availability"`
	Motivation       string            `json:"motivation"`
	PriorProjects    string            `json:"priorProjects"`
	CVLink           string            `json:"cvLink"`
	PublicationsLink string            `json:"publicationsLink"`
	InterviewDate    string            `json:"interviewDate,omitempty"`
	InterviewTime    string            `json:"interviewTime,omitempty"`
	InterviewDetails string            `json:"interviewDetails,omitempty"`
	Feedback         string            `json:"feedback,omitempty"`
	Project          *Project          `json:"project,omitempty"`
	User             *User             `json:"user,omitempty"`
}

// AppliedProject is the lightweight (pid, status) pair
type AppliedProject struct {
	PID    string            `json:"pid"`
	Status ApplicationStatus `json:"status"`
}

// ProjectApplications groups a faculty member's applications by project
type ProjectApplications struct {
	Project      Project       `json:"project"`
	Applications []Application `json:"applications"`
}
