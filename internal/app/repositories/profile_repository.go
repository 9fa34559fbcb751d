package repositories

import (
	"context"
	"sync"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

// ProfileRepository stores student profiles keyed by uid
type ProfileRepository struct {
	mu    sync.RWMutex
	byUID map[string]models.StudentProfile
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{byUID: make(map[string]models.StudentProfile)}
}

// Upsert replaces uid's profile and reports whether it was created
func (r *ProfileRepository) Upsert(ctx context.Context, uid string, profile models.StudentProfile) (models.StudentProfile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.byUID[uid]
	profile.UID = uid
	r.byUID[uid] = profile
	return profile, !existed
}

// Get returns uid's profile
func (r *ProfileRepository) Get(ctx context.Context, uid string) (models.StudentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUID[uid]
	if !ok {
		return models.StudentProfile{}, apperrors.NewResourceNotFoundError("Student profile not found")
	}
	return p, nil
}

// Find returns uid's profile if there is one
func (r *ProfileRepository) Find(ctx context.Context, uid string) (models.StudentProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUID[uid]
	return p, ok
}
