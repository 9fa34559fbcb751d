// Package models holds the ResearchConnect view-models exchanged with the REST API.
// They mirror the JSON payloads and carry no invariants of their own.
package models

// UserType defines the account type
type UserType string

const (
	UserTypeStudent UserType = "stu"
	UserTypeFaculty UserType = "fac"
)

// IsValid checks if the user type is one the API accepts
func (t UserType) IsValid() bool {
	return t == UserTypeStudent || t == UserTypeFaculty
}

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	StatusUnderReview ApplicationStatus = "under_review"
	StatusInterview   ApplicationStatus = "interview"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWaitlisted  ApplicationStatus = "waitlisted"
	StatusApproved    ApplicationStatus = "approved"
)

// ApplicationStatuses lists every status the backend accepts
var ApplicationStatuses = []ApplicationStatus{
	StatusUnderReview, StatusInterview, StatusAccepted, StatusRejected, StatusWaitlisted, StatusApproved,
}

// IsValid checks the status against ApplicationStatuses
func (s ApplicationStatus) IsValid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsFinal reports whether the application has been decided
func (s ApplicationStatus) IsFinal() bool {
	return s == StatusAccepted || s == StatusRejected
}
