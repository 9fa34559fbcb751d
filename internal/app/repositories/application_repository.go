package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

// ApplicationRepository stores applications keyed by a sequential ID
type ApplicationRepository struct {
	mu     sync.RWMutex
	byID   map[uint]*models.Application
	nextID uint
	now    func() time.Time
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{
		byID: make(map[uint]*models.Application),
		now:  time.Now,
	}
}

// Create stores a new application. A student applies to a project once.
func (r *ApplicationRepository) Create(ctx context.Context, app models.Application) (models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byID {
		if a.PID == app.PID && a.UID == app.UID {
			return models.Application{}, apperrors.NewConflictError("You have already applied to this project")
		}
	}

	r.nextID++
	now := r.now()
	app.ID = r.nextID
	app.CreatedAt = now
	app.UpdatedAt = now
	app.TimeCreated = now
	if app.Status == "" {
		app.Status = models.StatusUnderReview
	}
	app.Project, app.User = nil, nil

	stored := app
	r.byID[app.ID] = &stored
	return app, nil
}

// FindByID returns the application with id if it belongs to pid
func (r *ApplicationRepository) FindByID(ctx context.Context, pid string, id uint) (models.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok || a.PID != pid {
		return models.Application{}, apperrors.NewResourceNotFoundError("Application not found")
	}
	return *a, nil
}

// FindByProjectAndUser returns uid's application to pid
func (r *ApplicationRepository) FindByProjectAndUser(ctx context.Context, pid, uid string) (models.Application, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.PID == pid && a.UID == uid {
			return *a, true
		}
	}
	return models.Application{}, false
}

// ListByUser returns uid's applications, newest first
func (r *ApplicationRepository) ListByUser(ctx context.Context, uid string) []models.Application {
	return r.filter(func(a *models.Application) bool { return a.UID == uid })
}

// ListByProject returns the applications to pid, newest first
func (r *ApplicationRepository) ListByProject(ctx context.Context, pid string) []models.Application {
	return r.filter(func(a *models.Application) bool { return a.PID == pid })
}

// Update applies fn to the stored application and refreshes UpdatedAt
func (r *ApplicationRepository) Update(ctx context.Context, id uint, fn func(*models.Application) error) (models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return models.Application{}, apperrors.NewResourceNotFoundError("Application not found")
	}
	updated := *a
	if err := fn(&updated); err != nil {
		return models.Application{}, err
	}
	updated.UpdatedAt = r.now()
	r.byID[id] = &updated
	return updated, nil
}

// SetStatusFor changes the status of uid's application to pid, if there is one
func (r *ApplicationRepository) SetStatusFor(ctx context.Context, pid, uid string, status models.ApplicationStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byID {
		if a.PID == pid && a.UID == uid {
			a.Status = status
			a.UpdatedAt = r.now()
		}
	}
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperrors.NewResourceNotFoundError("Application not found")
	}
	delete(r.byID, id)
	return nil
}

// DeleteByProject removes every application to pid
func (r *ApplicationRepository) DeleteByProject(ctx context.Context, pid string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.byID {
		if a.PID == pid {
			delete(r.byID, id)
		}
	}
}

func (r *ApplicationRepository) filter(keep func(*models.Application) bool) []models.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Application, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}
