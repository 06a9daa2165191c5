package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/admin-panel-backend/internal/response"
	"github.com/stemsi/admin-panel-backend/internal/service"
)

// RequireAdmin passes only requests whose current user holds the admin role.
// Must be chained after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if err := service.RequireAdmin(user); err != nil {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}

		c.Next()
	}
}
