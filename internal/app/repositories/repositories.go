// Package repositories holds the stub server's in-memory stores.
// Each repository guards its own maps; none of them share locks.
package repositories

import "time"

// Repositories holds all the repository instances
type Repositories struct {
	Users             *UserRepository
	Verifications     *VerificationTokenRepository
	ResetTokens       *PasswordResetTokenRepository
	Projects          *ProjectRepository
	Applications      *ApplicationRepository
	Profiles          *ProfileRepository
	Roadmaps          *RoadmapRepository
	ProblemStatements *ProblemStatementRepository
}

// NewRepositories initializes all repositories
func NewRepositories() *Repositories {
	return &Repositories{
		Users:             NewUserRepository(),
		Verifications:     NewVerificationTokenRepository(),
		ResetTokens:       NewPasswordResetTokenRepository(),
		Projects:          NewProjectRepository(),
		Applications:      NewApplicationRepository(),
		Profiles:          NewProfileRepository(),
		Roadmaps:          NewRoadmapRepository(),
		ProblemStatements: NewProblemStatementRepository(),
	}
}

// SetClock replaces the time source of every repository that stamps or expires records
func (r *Repositories) SetClock(now func() time.Time) {
	r.Users.now = now
	r.Verifications.now = now
	r.ResetTokens.now = now
	r.Projects.now = now
	r.Applications.now = now
	r.Roadmaps.now = now
	r.ProblemStatements.now = now
}
