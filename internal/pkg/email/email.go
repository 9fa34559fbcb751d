package email

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendVerificationCode(toEmail, toName, code, token string) error
	SendPasswordReset(toEmail, toName, token string) error
	SendWelcomeEmail(toEmail, toName string) error
	SendApplicationUpdate(toEmail, toName, projectName, subject, body string) error
}

// LogEmailService writes every message to the log instead of delivering it.
// Codes and tokens appear in the log so they can be used for testing.
type LogEmailService struct {
	baseURL string
	logger  zerolog.Logger
}

// NewLogEmailService creates a new EmailService
func NewLogEmailService(baseURL string, logger zerolog.Logger) *LogEmailService {
	return &LogEmailService{
		baseURL: baseURL,
		logger:  logger.With().Str("component", "email").Logger(),
	}
}

// SendVerificationCode logs the 6-digit code and the verification link
func (s *LogEmailService) SendVerificationCode(toEmail, toName, code, token string) error {
	s.logger.Info().
		Str("toEmail", toEmail).
		Str("toName", toName).
		Str("code", code).
		Str("verificationURL", fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)).
		Msg("Verification email")
	return nil
}

// SendPasswordReset logs the reset link
func (s *LogEmailService) SendPasswordReset(toEmail, toName, token string) error {
	s.logger.Info().
		Str("toEmail", toEmail).
		Str("token", token).
		Str("resetURL", fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)).
		Msg("Password reset email")
	return nil
}

// SendWelcomeEmail logs a welcome message for a newly verified user
func (s *LogEmailService) SendWelcomeEmail(toEmail, toName string) error {
	s.logger.Info().Str("toEmail", toEmail).Str("toName", toName).Msg("Welcome email")
	return nil
}

// SendApplicationUpdate logs a status, feedback or interview notice
func (s *LogEmailService) SendApplicationUpdate(toEmail, toName, projectName, subject, body string) error {
	s.logger.Info().
		Str("toEmail", toEmail).
		Str("project", projectName).
		Str("subject", subject).
		Str("body", body).
		Msg("Application update email")
	return nil
}

// GenerateVerificationCode returns a random 6-digit code
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
