// Package seed fills a fresh stub server with demo accounts and a project to apply to.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/researchconnect/internal/app/models"
	appRepos "github.com/yigit/researchconnect/internal/app/repositories"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
	"github.com/yigit/researchconnect/internal/pkg/auth"
)

// Demo account addresses
const (
	FacultyEmail = "faculty@researchconnect.dev"
	StudentEmail = "student@researchconnect.dev"
)

// CreateDefaultData creates a verified faculty member, a verified student with a
// profile, and one open project owned by the faculty member. Accounts that already
// exist are left alone; other failures are collected and returned together.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, password string, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data...")

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	var finalErr error

	faculty, err := ensureUser(ctx, repos, appModels.User{Name: "Demo Faculty", Email: FacultyEmail, Type: appModels.UserTypeFaculty}, hash)
	if err != nil {
		lgr.Error().Err(err).Str("email", FacultyEmail).Msg("Error creating demo faculty")
		finalErr = errors.Join(finalErr, err)
	}

	student, err := ensureUser(ctx, repos, appModels.User{Name: "Demo Student", Email: StudentEmail, Type: appModels.UserTypeStudent}, hash)
	if err != nil {
		lgr.Error().Err(err).Str("email", StudentEmail).Msg("Error creating demo student")
		finalErr = errors.Join(finalErr, err)
	}

	if student.UID != "" {
		if _, err := repos.Profiles.Get(ctx, student.UID); errors.Is(err, apperrors.ErrResourceNotFound) {
			repos.Profiles.Upsert(ctx, student.UID, appModels.StudentProfile{
				Institution:      "ResearchConnect University",
				Degree:           "BSc Computer Science",
				Skills:           []string{"Go", "Python", "Machine Learning"},
				ResearchInterest: "natural language processing and information retrieval",
			})
		}
	}

	if faculty.UID != "" {
		_, err := repos.Projects.Create(ctx, appModels.Project{
			Name:         "Retrieval-augmented question answering",
			ShortDesc:    "Build and evaluate retrieval pipelines for open-domain QA",
			LongDesc:     "Students will implement dense retrievers, run ablations and write up results.",
			IsActive:     true,
			Tags:         []string{"nlp", "machine learning", "information retrieval"},
			Creator:      faculty.UID,
			FieldOfStudy: "Computer Science",
			Duration:     "6 months",
			PositionType: []string{"research assistant"},
		})
		if err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Msg("Error creating demo project")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Str("faculty", FacultyEmail).Str("student", StudentEmail).Msg("Demo data ready")
	}
	return finalErr
}

// ensureUser returns the verified account for u.Email, creating it when missing
func ensureUser(ctx context.Context, repos *appRepos.Repositories, u appModels.User, hash string) (appModels.User, error) {
	existing, _, err := repos.Users.FindByEmail(ctx, u.Email)
	if err == nil && existing.EmailVerified {
		return existing, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return appModels.User{}, err
	}

	if _, err := repos.Users.Create(ctx, u, hash); err != nil {
		return appModels.User{}, err
	}
	return repos.Users.MarkEmailVerified(ctx, u.Email)
}
