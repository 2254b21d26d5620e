package api

import (
	"errors"
	"net/http"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"

	"github.com/gin-gonic/gin"
)

// userIDHeader carries the caller's identity, set by the identity-aware
// edge after it has verified the session token. The service never sees
// raw credentials; it only enforces the role.
const userIDHeader = "X-User-ID"

// RequireAdmin rejects any request whose caller is not a known admin.
// This is the real authorization boundary; the dashboard's client-side
// redirect is cosmetic.
func RequireAdmin(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
			return
		}

		user, err := st.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}

		if user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
