package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

type verification struct {
	email     string
	code      string
	token     string
	expiresAt time.Time
	used      bool
}

// VerificationTokenRepository keeps the outstanding e-mail verification code of each address.
// A code also has a link token so the address can be confirmed either way.
type VerificationTokenRepository struct {
	mu      sync.Mutex
	byEmail map[string]*verification
	byToken map[string]*verification
	now     func() time.Time
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository() *VerificationTokenRepository {
	return &VerificationTokenRepository{
		byEmail: make(map[string]*verification),
		byToken: make(map[string]*verification),
		now:     time.Now,
	}
}

// Save replaces any earlier code for email
func (r *VerificationTokenRepository) Save(ctx context.Context, email, code, token string, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = normalizeEmail(email)
	if old, ok := r.byEmail[email]; ok {
		delete(r.byToken, old.token)
	}
	v := &verification{
		email:     email,
		code:      code,
		token:     token,
		expiresAt: r.now().Add(ttl),
	}
	r.byEmail[email] = v
	r.byToken[token] = v
}

// ConsumeCode marks the code for email as used if it matches and is still live
func (r *VerificationTokenRepository) ConsumeCode(ctx context.Context, email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byEmail[normalizeEmail(email)]
	if !ok || v.code != code {
		return apperrors.NewBadRequestError("Invalid verification code")
	}
	if err := r.check(v, "Verification code"); err != nil {
		return err
	}
	v.used = true
	return nil
}

// ConsumeToken marks the link token as used and returns the address it confirms
func (r *VerificationTokenRepository) ConsumeToken(ctx context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byToken[token]
	if !ok {
		return "", apperrors.NewBadRequestError("Invalid or expired verification token")
	}
	if err := r.check(v, "Verification token"); err != nil {
		return "", err
	}
	v.used = true
	return v.email, nil
}

func (r *VerificationTokenRepository) check(v *verification, what string) error {
	if v.used {
		return apperrors.NewBadRequestError(what + " has already been used")
	}
	if r.now().After(v.expiresAt) {
		return apperrors.NewCustomError(apperrors.ErrTokenExpired, what+" has expired")
	}
	return nil
}
