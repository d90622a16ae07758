package middleware

import (
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// Authenticate resolves the Authorization header to the live user and
// stores it in the context
func Authenticate(guard *service.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := guard.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		setCurrentUser(c, user)
		c.Next()
	}
}

func setCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
	c.Set("userID", user.ID)
	c.Set("role", string(user.Role))
}

// CurrentUser returns the user stored by Authenticate, or nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
