package apiclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

// Signup registers a new account. The account must verify its e-mail before Login succeeds.
func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error) {
	var out dto.SignupResponse
	if err := c.postAnonymous(ctx, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the returned token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out dto.TokenResponse
	err := c.postAnonymous(ctx, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login response carried no token")
	}
	if err := c.store.SetToken(out.Token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	c.log.Info().Str("email", email).Msg("Logged in")
	return out.Token, nil
}

// Refresh exchanges the stored token for a new one through the shared refresh guard
func (c *Client) Refresh(ctx context.Context) (string, error) {
	token, ok := c.store.Token()
	if !ok {
		return "", apperrors.ErrNoCredential
	}
	return c.renew(ctx, token)
}

// Me returns the authenticated user
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out dto.MeResponse
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout forgets the stored credential. The API keeps no session, so nothing is sent.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// ForgotPassword asks for a reset link. The API answers the same way whether or not the account exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.message(ctx, "/auth/forgot-password", dto.EmailRequest{Email: email})
}

// VerifyResetToken checks a reset token without consuming it
func (c *Client) VerifyResetToken(ctx context.Context, token string) (*dto.VerifyResetTokenResponse, error) {
	var out dto.VerifyResetTokenResponse
	if err := c.postAnonymous(ctx, "/auth/verify-reset-token", dto.TokenRequest{Token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password with a reset token
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return c.message(ctx, "/auth/reset-password", dto.ResetPasswordRequest{Token: token, NewPassword: newPassword})
}

// SendVerificationCode e-mails a 6-digit verification code
func (c *Client) SendVerificationCode(ctx context.Context, email string) (string, error) {
	return c.message(ctx, "/auth/send-verification-code", dto.EmailRequest{Email: email})
}

// VerifyCode confirms an e-mail address with a code
func (c *Client) VerifyCode(ctx context.Context, email, code string) (string, error) {
	return c.message(ctx, "/auth/verify-code", dto.VerifyCodeRequest{Email: email, Code: code})
}

// VerifyEmail confirms an e-mail address with the token from the verification link
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	return c.message(ctx, "/auth/verify-email", dto.TokenRequest{Token: token})
}

// ResendVerification sends a fresh verification code
func (c *Client) ResendVerification(ctx context.Context, email string) (string, error) {
	return c.message(ctx, "/auth/resend-verification", dto.EmailRequest{Email: email})
}

func (c *Client) message(ctx context.Context, path string, in interface{}) (string, error) {
	var out dto.MessageResponse
	if err := c.postAnonymous(ctx, path, in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
