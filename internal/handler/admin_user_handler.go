package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/admin-panel-backend/internal/middleware"
	"github.com/stemsi/admin-panel-backend/internal/model"
	"github.com/stemsi/admin-panel-backend/internal/response"
	"github.com/stemsi/admin-panel-backend/internal/service"
	"github.com/stemsi/admin-panel-backend/internal/validator"
)

// AdminUserHandler serves the admin-only user management endpoints.
type AdminUserHandler struct {
	service *service.UserService
	log     zerolog.Logger
}

func NewAdminUserHandler(service *service.UserService, log zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		log:     log.With().Str("component", "admin_user_handler").Logger(),
	}
}

// ListUsers godoc
// GET /api/v1/admin/users
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}

	response.Success(c, http.StatusOK, users)
}

// GetUser godoc
// GET /api/v1/admin/users/:id
func (h *AdminUserHandler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateUser godoc
// PUT/PATCH /api/v1/admin/users/:id
// Applies only the fields present in the body.
func (h *AdminUserHandler) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.service.Update(c.Request.Context(), middleware.GetCurrentUser(c), id, req.Patch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// DeleteUser godoc
// DELETE /api/v1/admin/users/:id
func (h *AdminUserHandler) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.GetCurrentUser(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, model.DeleteUserResponse{
		Message:       "User deleted successfully",
		DeletedUserID: id,
	})
}

// Stats godoc
// GET /api/v1/admin/stats
func (h *AdminUserHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func userID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
