package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/admin-panel-backend/internal/response"
)

const healthTimeout = 2 * time.Second

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the banner and health endpoints.
type SystemHandler struct {
	store     Pinger
	startTime time.Time
	log       zerolog.Logger
}

func NewSystemHandler(store Pinger, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		store:     store,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Root godoc
// GET /
func (h *SystemHandler) Root(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "Admin Panel API is running"})
}

// Health godoc
// GET /health
// Reports liveness and whether the user store answers a ping.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Health check: store unreachable")
		response.Fail(c, http.StatusServiceUnavailable, response.ErrServiceUnavailable)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status": "ok",
		"store":  "up",
		"uptime": time.Since(h.startTime).Truncate(time.Second).String(),
	})
}
