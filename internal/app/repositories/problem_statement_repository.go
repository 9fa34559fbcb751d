package repositories

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

// ProblemStatementRepository stores problem statements keyed by psid
type ProblemStatementRepository struct {
	mu     sync.RWMutex
	byPSID map[string]*models.ProblemStatement
	nextID uint
	now    func() time.Time
}

// NewProblemStatementRepository creates a new ProblemStatementRepository
func NewProblemStatementRepository() *ProblemStatementRepository {
	return &ProblemStatementRepository{
		byPSID: make(map[string]*models.ProblemStatement),
		now:    time.Now,
	}
}

func (r *ProblemStatementRepository) titleTaken(uploader, title, exceptPSID string) bool {
	for _, ps := range r.byPSID {
		if ps.PSID != exceptPSID && ps.UploadedBy == uploader && ps.Title == title {
			return true
		}
	}
	return false
}

// lookup resolves a psid or a numeric id. Called with mu held.
func (r *ProblemStatementRepository) lookup(ref string) (*models.ProblemStatement, error) {
	if ps, ok := r.byPSID[ref]; ok {
		return ps, nil
	}
	if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
		for _, ps := range r.byPSID {
			if ps.ID == uint(id) {
				return ps, nil
			}
		}
	}
	return nil, apperrors.NewResourceNotFoundError("Problem statement not found")
}

// Create assigns psid and timestamps and stores ps.
// An uploader cannot post two problem statements with the same title.
func (r *ProblemStatementRepository) Create(ctx context.Context, ps models.ProblemStatement) (models.ProblemStatement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.titleTaken(ps.UploadedBy, ps.Title, "") {
		return models.ProblemStatement{}, apperrors.NewConflictError("Problem statement with this title already exists")
	}

	r.nextID++
	now := r.now()
	ps.ID = r.nextID
	ps.PSID = uuid.NewString()
	ps.CreatedAt = now
	ps.UpdatedAt = now

	stored := ps
	r.byPSID[ps.PSID] = &stored
	return ps, nil
}

// Find returns the problem statement with psid or numeric id ref
func (r *ProblemStatementRepository) Find(ctx context.Context, ref string) (models.ProblemStatement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ps, err := r.lookup(ref)
	if err != nil {
		return models.ProblemStatement{}, err
	}
	return *ps, nil
}

// List returns every problem statement, oldest first
func (r *ProblemStatementRepository) List(ctx context.Context) []models.ProblemStatement {
	return r.filter(func(*models.ProblemStatement) bool { return true })
}

// SearchByCategory matches category as a case-insensitive substring
func (r *ProblemStatementRepository) SearchByCategory(ctx context.Context, category string) []models.ProblemStatement {
	needle := strings.ToLower(category)
	return r.filter(func(ps *models.ProblemStatement) bool {
		return strings.Contains(strings.ToLower(ps.Category), needle)
	})
}

// ListByUploader returns uid's problem statements, oldest first
func (r *ProblemStatementRepository) ListByUploader(ctx context.Context, uid string) []models.ProblemStatement {
	return r.filter(func(ps *models.ProblemStatement) bool { return ps.UploadedBy == uid })
}

// Update applies fn to the stored problem statement and refreshes UpdatedAt.
// fn runs under the repository lock and must not call back into it.
func (r *ProblemStatementRepository) Update(ctx context.Context, ref string, fn func(*models.ProblemStatement) error) (models.ProblemStatement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.lookup(ref)
	if err != nil {
		return models.ProblemStatement{}, err
	}

	updated := *ps
	if err := fn(&updated); err != nil {
		return models.ProblemStatement{}, err
	}
	if r.titleTaken(updated.UploadedBy, updated.Title, updated.PSID) {
		return models.ProblemStatement{}, apperrors.NewConflictError("Problem statement with this title already exists")
	}
	updated.UpdatedAt = r.now()
	r.byPSID[updated.PSID] = &updated
	return updated, nil
}

// Delete removes the problem statement ref if allow approves it, and returns what was removed
func (r *ProblemStatementRepository) Delete(ctx context.Context, ref string, allow func(models.ProblemStatement) error) (models.ProblemStatement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.lookup(ref)
	if err != nil {
		return models.ProblemStatement{}, err
	}
	if err := allow(*ps); err != nil {
		return models.ProblemStatement{}, err
	}
	delete(r.byPSID, ps.PSID)
	return *ps, nil
}

func (r *ProblemStatementRepository) filter(keep func(*models.ProblemStatement) bool) []models.ProblemStatement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ProblemStatement, 0, len(r.byPSID))
	for _, ps := range r.byPSID {
		if keep(ps) {
			out = append(out, *ps)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
