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
)

type userRecord struct {
	user         models.User
	passwordHash string
}

// UserRepository stores accounts keyed by uid, with an e-mail index
type UserRepository struct {
	mu      sync.RWMutex
	byUID   map[string]*userRecord
	byEmail map[string]string
	now     func() time.Time
}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byUID:   make(map[string]*userRecord),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new account and assigns its uid.
// An unverified account with the same e-mail is replaced; a verified one is a conflict.
func (r *UserRepository) Create(ctx context.Context, user models.User, passwordHash string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(user.Email)
	if uid, ok := r.byEmail[email]; ok {
		if r.byUID[uid].user.EmailVerified {
			return models.User{}, apperrors.NewConflictError("User already exists")
		}
		delete(r.byUID, uid)
	}

	user.UID = uuid.NewString()
	user.Email = email
	user.EmailVerified = false
	user.CreatedAt = r.now()

	r.byUID[user.UID] = &userRecord{user: user, passwordHash: passwordHash}
	r.byEmail[email] = user.UID
	return user, nil
}

// FindByEmail returns the account and its password hash
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uid, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return models.User{}, "", apperrors.NewResourceNotFoundError("User not found")
	}
	rec := r.byUID[uid]
	return rec.user, rec.passwordHash, nil
}

// FindByUID returns the account with the given uid
func (r *UserRepository) FindByUID(ctx context.Context, uid string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byUID[uid]
	if !ok {
		return models.User{}, apperrors.NewResourceNotFoundError("User not found")
	}
	return rec.user, nil
}

// MarkEmailVerified flags the account as verified
func (r *UserRepository) MarkEmailVerified(ctx context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uid, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return models.User{}, apperrors.NewResourceNotFoundError("User not found")
	}
	rec := r.byUID[uid]
	rec.user.EmailVerified = true
	return rec.user, nil
}

// UpdatePassword replaces the password hash of uid
func (r *UserRepository) UpdatePassword(ctx context.Context, uid, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byUID[uid]
	if !ok {
		return apperrors.NewResourceNotFoundError("User not found")
	}
	rec.passwordHash = passwordHash
	return nil
}

// List returns every account ordered by name
func (r *UserRepository) List(ctx context.Context) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.byUID))
	for _, rec := range r.byUID {
		users = append(users, rec.user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name == users[j].Name {
			return users[i].UID < users[j].UID
		}
		return users[i].Name < users[j].Name
	})
	return users
}
