package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextUserType = "userType"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authorization header required"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abort(c, http.StatusUnauthorized,
				dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid authorization header format. Use 'Bearer <token>'"))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
			}
			abort(c, http.StatusUnauthorized, dto.NewErrorDetail(code, "Invalid or expired token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextUserType, models.UserType(claims.Type))

		c.Next()
	}
}

// RequireUserType middleware to check the caller's account type
func (m *AuthMiddleware) RequireUserType(allowed ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := c.Get(ContextUserType)
		if !exists {
			abort(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated"))
			return
		}

		for _, t := range allowed {
			if userType == t {
				c.Next()
				return
			}
		}

		abort(c, http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Insufficient permissions"))
	}
}

// CurrentUser returns the uid and account type JWTAuth stored on the context
func CurrentUser(c *gin.Context) (string, models.UserType) {
	uid := c.GetString(ContextUserID)
	userType, _ := c.Get(ContextUserType)
	t, _ := userType.(models.UserType)
	return uid, t
}

func abort(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
