package models

import "time"

// User is an account as the API exposes it
type User struct {
	UID           string    `json:"uid"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Type          UserType  `json:"type"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"CreatedAt,omitempty"`
}

// WorkingUser is a member of a project team
type WorkingUser struct {
	UID   string   `json:"uid"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Type  UserType `json:"type"`
}

// UserProfile is the public profile returned by /profile/user/{uid}
type UserProfile struct {
	UID     string          `json:"uid"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Type    UserType        `json:"type"`
	Student *StudentProfile `json:"student,omitempty"`
}

// ExploreUser is one card of the explore listing
type ExploreUser struct {
	UID              string   `json:"uid"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Type             UserType `json:"type"`
	Institution      string   `json:"institution,omitempty"`
	Degree           string   `json:"degree,omitempty"`
	Location         string   `json:"location,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	ResearchInterest string   `json:"researchInterest,omitempty"`
}
