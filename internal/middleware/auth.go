package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	"github.com/riyazsharif/employee-leave-managment-system/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer
// tokens and attaches the verified principal to the request context. It
// rejects the request before any core component is invoked.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" || !claims.Role.IsValid() {
			logger.Error("Token claims missing subject or role")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		principal := domain.Principal{
			EmployeeID: claims.Subject,
			Email:      claims.Email,
			Role:       claims.Role,
		}

		ctxWithPrincipal := context.WithValue(c.Request.Context(), principalKey, principal)

		enrichedLogger := logger.With(slog.String("employee_id", principal.EmployeeID))
		ctxWithLoggerAndPrincipal := context.WithValue(ctxWithPrincipal, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndPrincipal)
		c.Next()
	}
}

// RequireRole creates a Gin middleware that rejects principals lacking the
// given role. Must run after AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipalFromCtx(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if principal.Role != role {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role check failed",
				slog.String("required", string(role)),
				slog.String("actual", string(principal.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this operation"})
			return
		}
		c.Next()
	}
}
