package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/infrastructure/auth"
	"github.com/mealplan/backend/internal/infrastructure/logger"
	"github.com/mealplan/backend/internal/interfaces/http/dto"
)

const (
	// JWTClaimsKey is the gin context key holding the validated token claims.
	JWTClaimsKey = "jwt_claims"
	// JWTUserIDKey is the gin context key holding the authenticated user ID.
	JWTUserIDKey = "jwt_user_id"
	// AuthHeaderKey is the header carrying the bearer token.
	AuthHeaderKey = "Authorization"
	// BearerPrefix prefixes the token in the Authorization header.
	BearerPrefix = "Bearer "
)

// JWTMiddlewareConfig configures the JWT authentication middleware.
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService

	// TokenBlacklist rejects tokens whose JTI was revoked at logout.
	// Optional; without it only signature and expiry are checked.
	TokenBlacklist auth.TokenBlacklist

	// SkipPaths are exact request paths that bypass authentication.
	SkipPaths []string

	// SkipPathPrefixes are path prefixes that bypass authentication.
	SkipPathPrefixes []string

	Logger *zap.Logger
}

// JWTAuthMiddleware authenticates requests with the given JWT service and
// no skip paths or revocation checks.
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig validates the bearer token on every request
// that is not skipped, checks the token against the revocation list, and
// stores the claims and user ID in the gin context for handlers.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipAuth(c.Request.URL.Path, cfg) {
			c.Next()
			return
		}

		token, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.Contains(c.Request.Context(), claims.ID)
			if err != nil {
				// Revocation storage being down must not lock every user
				// out, so the check fails open.
				if cfg.Logger != nil {
					cfg.Logger.Warn("Token revocation check failed",
						zap.Error(err),
						zap.String("path", c.Request.URL.Path))
				}
			} else if revoked {
				abortUnauthorized(c, auth.ErrTokenBlacklisted)
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)

		if cfg.Logger != nil {
			ctx, _ := logger.WithUserID(c.Request.Context(), cfg.Logger, claims.UserID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

func skipAuth(path string, cfg JWTMiddlewareConfig) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		return "", auth.ErrInvalidToken
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", auth.ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

// abortUnauthorized writes a 401 with an error code matching the validation
// failure and stops the handler chain.
func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrCodeUnauthorized
	message := "Authentication required"

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code = dto.ErrCodeTokenInvalid
		message = "Token has been revoked"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code = dto.ErrCodeTokenInvalid
		message = "Token is not yet valid"
	case errors.Is(err, auth.ErrInvalidTokenType):
		code = dto.ErrCodeTokenInvalid
		message = "Wrong token type for this endpoint"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims):
		code = dto.ErrCodeTokenInvalid
		message = "Invalid authentication token"
	}

	resp := dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDContextKey))
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}

// GetJWTClaims returns the claims stored by the auth middleware, or nil when
// the request was not authenticated.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetJWTUserID returns the authenticated user ID, or an empty string when
// the request was not authenticated.
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}
