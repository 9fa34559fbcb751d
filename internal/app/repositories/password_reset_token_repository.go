package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

type resetToken struct {
	uid       string
	expiresAt time.Time
	used      bool
}

// PasswordResetTokenRepository manages single-use password reset tokens
type PasswordResetTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*resetToken
	now    func() time.Time
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository() *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		tokens: make(map[string]*resetToken),
		now:    time.Now,
	}
}

// CreateToken stores a reset token for uid and drops the older ones
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, uid, token string, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for t, rt := range r.tokens {
		if rt.uid == uid {
			delete(r.tokens, t)
		}
	}
	r.tokens[token] = &resetToken{uid: uid, expiresAt: r.now().Add(ttl)}
}

// GetTokenInfo returns the uid a live token belongs to
func (r *PasswordResetTokenRepository) GetTokenInfo(ctx context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt, err := r.live(token)
	if err != nil {
		return "", err
	}
	return rt.uid, nil
}

// MarkTokenAsUsed consumes a live token and returns its uid
func (r *PasswordResetTokenRepository) MarkTokenAsUsed(ctx context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt, err := r.live(token)
	if err != nil {
		return "", err
	}
	rt.used = true
	return rt.uid, nil
}

func (r *PasswordResetTokenRepository) live(token string) (*resetToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid reset token")
	}
	if rt.used {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Reset token has already been used")
	}
	if r.now().After(rt.expiresAt) {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenExpired, "Reset token has expired")
	}
	return rt, nil
}
