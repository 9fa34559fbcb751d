package models

import "time"

// Project is a research project posted by a faculty member
type Project struct {
	ID             uint      `json:"ID,omitempty"`
	CreatedAt      time.Time `json:"CreatedAt,omitempty"`
	UpdatedAt      time.Time `json:"UpdatedAt,omitempty"`
	PID            string    `json:"pid"`
	Name           string    `json:"name"`
	ShortDesc      string    `json:"sdesc"`
	LongDesc       string    `json:"ldesc"`
	IsActive       bool      `json:"isActive"`
	Tags           []string  `json:"tags"`
	Creator        string    `json:"creator"`
	WorkingUsers   []string  `json:"workingUsers"`
	FieldOfStudy   string    `json:"fieldOfStudy,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Duration       string    `json:"duration,omitempty"`
	PositionType   []string  `json:"positionType,omitempty"`
	Deadline       string    `json:"deadline,omitempty"`
	User           *User     `json:"user,omitempty"`
}

// HasMember reports whether uid is on the project team
func (p *Project) HasMember(uid string) bool {
	for _, u := range p.WorkingUsers {
		if u == uid {
			return true
		}
	}
	return false
}

// RecommendedProject is a project scored against a student's profile
type RecommendedProject struct {
	Project
	MatchScore   float64  `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
}
