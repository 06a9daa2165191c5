package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/admin-panel-backend/internal/model"
	"github.com/stemsi/admin-panel-backend/internal/response"
	"github.com/stemsi/admin-panel-backend/internal/service"
)

const (
	// ContextKeyCurrentUser is the Gin context key for the authenticated user.
	ContextKeyCurrentUser = "current_user"
)

// RequireUser resolves the bearer token from the Authorization header to a
// user record and stores it on the context.
func RequireUser(gate *service.Gate, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		user, err := gate.ResolveCurrentUser(c.Request.Context(), tokenStr)
		if errors.Is(err, service.ErrUnauthenticated) {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		if err != nil {
			log.Error().Err(err).
				Str("request_id", response.RequestID(c)).
				Msg("Failed to resolve current user")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyCurrentUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the user stored by RequireUser.
func GetCurrentUser(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyCurrentUser)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
