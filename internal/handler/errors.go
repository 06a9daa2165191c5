package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/admin-panel-backend/internal/response"
	"github.com/stemsi/admin-panel-backend/internal/service"
)

var errorStatus = []struct {
	err    error
	status int
	code   response.ErrCode
	field  string
}{
	{service.ErrUnauthenticated, http.StatusUnauthorized, response.ErrTokenInvalid, ""},
	{service.ErrForbidden, http.StatusForbidden, response.ErrAdminAccessOnly, ""},
	{service.ErrDuplicateEmail, http.StatusConflict, response.ErrEmailExists, ""},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials, ""},
	{service.ErrPendingApproval, http.StatusForbidden, response.ErrPendingApproval, ""},
	{service.ErrNotFound, http.StatusNotFound, response.ErrNotFound, ""},
	{service.ErrSelfAction, http.StatusBadRequest, response.ErrCannotDeleteSelf, ""},
	{service.ErrLastAdmin, http.StatusBadRequest, response.ErrLastAdmin, ""},
	{service.ErrInvalidRole, http.StatusBadRequest, response.ErrValidation, "role"},
	{service.ErrPasswordTooLong, http.StatusBadRequest, response.ErrValidation, "password"},
	{service.ErrTooManyAttempts, http.StatusTooManyRequests, response.ErrTooManyAttempts, ""},
}

// writeError translates a service error into the response envelope. Errors
// outside the service vocabulary are logged and reported as internal.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			if e.field != "" {
				response.FailWithFields(c, e.status, e.code, map[string]string{e.field: err.Error()})
				return
			}
			response.Fail(c, e.status, e.code)
			return
		}
	}

	log.Error().Err(err).
		Str("request_id", response.RequestID(c)).
		Str("path", c.FullPath()).
		Msg("Request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
