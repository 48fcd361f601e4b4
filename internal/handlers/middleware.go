package handlers

import (
	"net/http"

	"user_accounts/internal/models"

	"github.com/gin-gonic/gin"
)

// Context key under which the authenticated user is stored.
const userCtxKey = "user"

// sessionMiddleware gates protected endpoints on the token cookie. Any
// verification failure answers 401; a valid token whose user has since
// been deleted answers 401 as well.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "login first",
		})
		return
	}

	userID, err := h.services.Sessions.Parse(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "invalid or expired token",
		})
		return
	}

	user, err := h.services.Accounts.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "login first",
		})
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// currentUser returns the user attached by sessionMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userCtxKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
