// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/app/repositories"
	"github.com/yigit/researchconnect/internal/middleware"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
	"github.com/yigit/researchconnect/internal/pkg/auth"
	"github.com/yigit/researchconnect/internal/pkg/email"
)

const (
	verificationCodeTTL = 10 * time.Minute
	resetTokenTTL       = time.Hour
)

// AuthController handles authentication related operations
type AuthController struct {
	users         *repositories.UserRepository
	verifications *repositories.VerificationTokenRepository
	resetTokens   *repositories.PasswordResetTokenRepository
	jwtService    *auth.JWTService
	mailer        email.EmailService
	logger        zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(repos *repositories.Repositories, jwtService *auth.JWTService, mailer email.EmailService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		users:         repos.Users,
		verifications: repos.Verifications,
		resetTokens:   repos.ResetTokens,
		jwtService:    jwtService,
		mailer:        mailer,
		logger:        logger,
	}
}

// Signup handles user registration. The account stays unverified until the e-mailed code is confirmed.
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if !req.Type.IsValid() {
		c.logger.Warn().Str("type", string(req.Type)).Msg("Invalid user type")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user type. Must be 'fac' or 'stu'").WithField("type")))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.users.Create(ctx.Request.Context(), models.User{Name: req.Name, Email: req.Email, Type: req.Type}, hash)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Signup rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.issueVerification(ctx, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("uid", user.UID).Str("type", string(user.Type)).Msg("User registered")
	ctx.JSON(http.StatusCreated, dto.SignupResponse{
		Message: "User created successfully. A verification code will be sent to your email shortly.",
		User:    user,
	})
}

// Login handles user login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, hash, err := c.users.FindByEmail(ctx.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(hash, req.Password) {
		c.logger.Warn().Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredentials)
		return
	}

	if !user.EmailVerified {
		verified := false
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:         "Email not verified",
			Code:          dto.ErrorCodeEmailNotVerified,
			EmailVerified: &verified,
		})
		return
	}

	token, err := c.jwtService.GenerateToken(identity(user))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("uid", user.UID).Msg("User logged in successfully")
	ctx.JSON(http.StatusOK, dto.TokenResponse{Message: "Login successful", Token: token})
}

// RefreshToken exchanges a still-valid bearer token for a new one.
// The token may also be sent as {"token": ...} when the header is absent.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	tokenString, err := auth.ExtractBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		var body dto.TokenRequest
		if bindErr := ctx.ShouldBindJSON(&body); bindErr != nil {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authorization header required")))
			return
		}
		tokenString = body.Token
	}

	fresh, err := c.jwtService.RefreshToken(tokenString)
	if err != nil {
		code := dto.ErrorCodeInvalidToken
		if errors.Is(err, auth.ErrExpiredToken) {
			code = dto.ErrorCodeExpiredToken
		}
		c.logger.Warn().Err(err).Msg("Refresh token failed")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, "Invalid or expired token")))
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{Message: "Token refreshed successfully", Token: fresh})
}

// Me returns the authenticated user
func (c *AuthController) Me(ctx *gin.Context) {
	uid, _ := middleware.CurrentUser(ctx)
	user, err := c.users.FindByUID(ctx.Request.Context(), uid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MeResponse{User: user})
}

// ForgotPassword e-mails a reset link. The answer is the same whether or not the account exists.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.EmailRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	const reply = "If an account with that email exists, a password reset link has been sent"
	user, _, err := c.users.FindByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: reply})
		return
	}

	token := uuid.NewString()
	c.resetTokens.CreateToken(ctx.Request.Context(), user.UID, token, resetTokenTTL)
	if err := c.mailer.SendPasswordReset(user.Email, user.Name, token); err != nil {
		c.logger.Error().Err(err).Str("uid", user.UID).Msg("Failed to send reset email")
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: reply})
}

// VerifyResetToken reports whether a reset token is still usable without consuming it
func (c *AuthController) VerifyResetToken(ctx *gin.Context) {
	var req dto.TokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	uid, err := c.resetTokens.GetTokenInfo(ctx.Request.Context(), req.Token)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}
	user, err := c.users.FindByUID(ctx.Request.Context(), uid)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.VerifyResetTokenResponse{Valid: true, Email: user.Email})
}

// ResetPassword sets a new password and consumes the reset token
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if len(req.NewPassword) < auth.MinPasswordLength {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidPassword, "Password must be at least 6 characters long").WithField("new_password")))
		return
	}

	uid, err := c.resetTokens.MarkTokenAsUsed(ctx.Request.Context(), req.Token)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.users.UpdatePassword(ctx.Request.Context(), uid, hash); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("uid", uid).Msg("Password reset")
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset successfully"})
}

// SendVerificationCode e-mails a fresh 6-digit code to an unverified account
func (c *AuthController) SendVerificationCode(ctx *gin.Context) {
	var req dto.EmailRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, _, err := c.users.FindByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if user.EmailVerified {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Email is already verified"))
		return
	}

	if err := c.issueVerification(ctx, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Verification code sent to your email"})
}

// VerifyCode confirms an address with the e-mailed code
func (c *AuthController) VerifyCode(ctx *gin.Context) {
	var req dto.VerifyCodeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.verifications.ConsumeCode(ctx.Request.Context(), req.Email, req.Code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.markVerified(ctx, req.Email)
}

// VerifyEmail confirms an address with the token from the verification link
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	var req dto.TokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	address, err := c.verifications.ConsumeToken(ctx.Request.Context(), req.Token)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.markVerified(ctx, address)
}

// ResendVerification sends a new code. It does not reveal whether the account exists.
func (c *AuthController) ResendVerification(ctx *gin.Context) {
	var req dto.EmailRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	const reply = "If the email exists and is unverified, a new verification code has been sent"
	user, _, err := c.users.FindByEmail(ctx.Request.Context(), req.Email)
	if err != nil || user.EmailVerified {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: reply})
		return
	}

	if err := c.issueVerification(ctx, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: reply})
}

func (c *AuthController) issueVerification(ctx *gin.Context, user models.User) error {
	code, err := email.GenerateVerificationCode()
	if err != nil {
		return err
	}
	token := uuid.NewString()
	c.verifications.Save(ctx.Request.Context(), user.Email, code, token, verificationCodeTTL)

	if err := c.mailer.SendVerificationCode(user.Email, user.Name, code, token); err != nil {
		c.logger.Error().Err(err).Str("uid", user.UID).Msg("Failed to send verification email")
	}
	return nil
}

func (c *AuthController) markVerified(ctx *gin.Context, address string) {
	user, err := c.users.MarkEmailVerified(ctx.Request.Context(), address)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
		c.logger.Error().Err(err).Str("uid", user.UID).Msg("Failed to send welcome email")
	}
	c.logger.Info().Str("uid", user.UID).Msg("Email verified")
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified successfully"})
}

func identity(u models.User) auth.Identity {
	return auth.Identity{UID: u.UID, Email: u.Email, Name: u.Name, Type: string(u.Type)}
}
