package middleware

import (
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccessControlMiddleware gates routes by role policy
type AccessControlMiddleware struct {
	guard *service.AccessGuard
}

// NewAccessControlMiddleware creates a new access control middleware
func NewAccessControlMiddleware(guard *service.AccessGuard) *AccessControlMiddleware {
	return &AccessControlMiddleware{guard: guard}
}

// Authenticate resolves the bearer token to the live user
func (m *AccessControlMiddleware) Authenticate() gin.HandlerFunc {
	return Authenticate(m.guard)
}

// Require verifies the user set by Authenticate satisfies policy
func (m *AccessControlMiddleware) Require(policy service.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.guard.Authorize(CurrentUser(c), policy); err != nil {
			utils.AbortWithError(c, err)
			return
		}

		c.Next()
	}
}

// Identify stores the caller when the request carries a valid token and
// lets anonymous requests through unchanged
func (m *AccessControlMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if user, err := m.guard.Authenticate(c.Request.Context(), c.GetHeader("Authorization")); err == nil {
				setCurrentUser(c, user)
			}
		}
		c.Next()
	}
}

// Chain returns the ordered pipeline for a route: authenticate, then
// authorize against policy. A nil policy marks a public route, which only
// identifies the caller.
func (m *AccessControlMiddleware) Chain(policy service.Policy) []gin.HandlerFunc {
	if policy == nil {
		return []gin.HandlerFunc{m.Identify()}
	}
	return []gin.HandlerFunc{m.Authenticate(), m.Require(policy)}
}
