package v1

import (
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the authentication middleware.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// actorID returns the ID of the authenticated user, or the nil UUID for
// unauthenticated requests.
func actorID(c *gin.Context) uuid.UUID {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}

	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return id
}

// actorRole returns the role of the authenticated user.
func actorRole(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString(ContextUserRole))
}

// RequireAdmin aborts the request with 403 unless the authenticated
// user has the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorRole(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(status(models.ErrAdminRequired), httpError{
				Error: models.ErrAdminRequired.Error(),
			})
			return
		}

		c.Next()
	}
}
