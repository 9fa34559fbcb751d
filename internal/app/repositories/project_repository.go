package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
	"github.com/yigit/researchconnect/internal/pkg/helpers"
)

// ProjectRepository stores projects keyed by pid
type ProjectRepository struct {
	mu     sync.RWMutex
	byPID  map[string]*models.Project
	nextID uint
	now    func() time.Time
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		byPID: make(map[string]*models.Project),
		now:   time.Now,
	}
}

func (r *ProjectRepository) nameTaken(creator, name, exceptPID string) bool {
	for _, p := range r.byPID {
		if p.PID != exceptPID && p.Creator == creator && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// Create assigns pid and timestamps and stores the project.
// A creator cannot own two projects with the same name.
func (r *ProjectRepository) Create(ctx context.Context, project models.Project) (models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(project.Creator, project.Name, "") {
		return models.Project{}, apperrors.NewConflictError("Project with this name already exists")
	}

	r.nextID++
	now := r.now()
	project.ID = r.nextID
	project.PID = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Tags == nil {
		project.Tags = []string{}
	}
	if project.WorkingUsers == nil {
		project.WorkingUsers = []string{}
	}
	project.User = nil

	stored := project
	r.byPID[project.PID] = &stored
	return project, nil
}

// FindByPID returns a copy of the project
func (r *ProjectRepository) FindByPID(ctx context.Context, pid string) (models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byPID[pid]
	if !ok {
		return models.Project{}, apperrors.NewResourceNotFoundError("Project not found")
	}
	return clone(p), nil
}

// List returns every project, newest first
func (r *ProjectRepository) List(ctx context.Context) []models.Project {
	return r.filter(func(*models.Project) bool { return true })
}

// ListByCreator returns the projects owned by uid, newest first
func (r *ProjectRepository) ListByCreator(ctx context.Context, uid string) []models.Project {
	return r.filter(func(p *models.Project) bool { return p.Creator == uid })
}

// ListActive returns the active projects, newest first
func (r *ProjectRepository) ListActive(ctx context.Context) []models.Project {
	return r.filter(func(p *models.Project) bool { return p.IsActive })
}

// ListVisible pages through the active projects plus those in include, newest first.
// It returns the page and the total number of matching projects.
func (r *ProjectRepository) ListVisible(ctx context.Context, include map[string]bool, page, size int) ([]models.Project, int) {
	all := r.filter(func(p *models.Project) bool { return p.IsActive || include[p.PID] })
	start, end := helpers.CalculateSliceIndices(page, size, len(all))
	return all[start:end], len(all)
}

// Update applies fn to the stored project and refreshes UpdatedAt.
// fn runs under the repository lock and must not call back into it.
func (r *ProjectRepository) Update(ctx context.Context, pid string, fn func(*models.Project) error) (models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byPID[pid]
	if !ok {
		return models.Project{}, apperrors.NewResourceNotFoundError("Project not found")
	}

	updated := clone(p)
	if err := fn(&updated); err != nil {
		return models.Project{}, err
	}
	if r.nameTaken(updated.Creator, updated.Name, pid) {
		return models.Project{}, apperrors.NewConflictError("Project with this name already exists")
	}
	updated.UpdatedAt = r.now()
	r.byPID[pid] = &updated
	return clone(&updated), nil
}

// AddWorkingUser puts uid on the project team if it is not there yet
func (r *ProjectRepository) AddWorkingUser(ctx context.Context, pid, uid string) error {
	_, err := r.Update(ctx, pid, func(p *models.Project) error {
		if !p.HasMember(uid) {
			p.WorkingUsers = append(p.WorkingUsers, uid)
		}
		return nil
	})
	return err
}

// RemoveWorkingUser takes uid off the project team
func (r *ProjectRepository) RemoveWorkingUser(ctx context.Context, pid, uid string) error {
	_, err := r.Update(ctx, pid, func(p *models.Project) error {
		kept := p.WorkingUsers[:0]
		for _, u := range p.WorkingUsers {
			if u != uid {
				kept = append(kept, u)
			}
		}
		p.WorkingUsers = kept
		return nil
	})
	return err
}

// Delete removes the project
func (r *ProjectRepository) Delete(ctx context.Context, pid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPID[pid]; !ok {
		return apperrors.NewResourceNotFoundError("Project not found")
	}
	delete(r.byPID, pid)
	return nil
}

func (r *ProjectRepository) filter(keep func(*models.Project) bool) []models.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Project, 0, len(r.byPID))
	for _, p := range r.byPID {
		if keep(p) {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// clone copies the slices so callers cannot mutate stored state
func clone(p *models.Project) models.Project {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	c.WorkingUsers = append([]string{}, p.WorkingUsers...)
	if p.PositionType != nil {
		c.PositionType = append([]string{}, p.PositionType...)
	}
	return c
}
