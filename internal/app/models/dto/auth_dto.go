package dto

import "github.com/yigit/researchconnect/internal/app/models"

// SignupRequest represents a new account
type SignupRequest struct {
	Name     string          `json:"name" yaml:"name" binding:"required"`
	Email    string          `json:"email" yaml:"email" binding:"required,email"`
	Password string          `json:"password" yaml:"password" binding:"required,min=6"`
	Type     models.UserType `json:"type" yaml:"type" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest carries a bearer, reset or verification token in the body
type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// EmailRequest is the body of forgot-password, send-verification-code and resend-verification
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyCodeRequest confirms an e-mail address with the 6-digit code
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ResetPasswordRequest sets a new password using a reset token
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// SignupResponse is returned by signup
type SignupResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// MeResponse is returned by /auth/me
type MeResponse struct {
	User models.User `json:"user"`
}

// VerifyResetTokenResponse reports whether a reset token can still be used
type VerifyResetTokenResponse struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
}
