package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medhubhq/medhub/internal/audit"
)

type Middleware struct {
	verifier *Verifier
	audit    audit.Service
}

func NewMiddleware(verifier *Verifier, auditService audit.Service) *Middleware {
	return &Middleware{verifier: verifier, audit: auditService}
}

// RequireRoles creates a middleware that verifies the bearer token and,
// when roles are given, checks the token's role against them.
func (m *Middleware) RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization header"})
			c.Abort()
			return
		}

		claims, err := m.verifier.ValidateToken(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if len(requiredRoles) > 0 {
			hasRequiredRole := false
			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					hasRequiredRole = true
					break
				}
			}

			if !hasRequiredRole {
				m.audit.LogEvent(c.Request.Context(), &audit.AuditEvent{
					EventType: audit.EventDenied,
					UserID:    claims.UserID,
					Action:    "ACCESS",
					Resource:  c.Request.URL.Path,
					RequestID: c.GetString("request_id"),
					Status:    "denied",
				})
				c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
				c.Abort()
				return
			}
		}

		// Set user context for downstream handlers
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// GetUserID retrieves the user ID from the gin context
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	id, _ := userID.(string)
	return id
}

// GetUserRole retrieves the user role from the gin context
func GetUserRole(c *gin.Context) string {
	role, _ := c.Get("role")
	r, _ := role.(string)
	return r
}
