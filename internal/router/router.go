package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/admin-panel-backend/internal/config"
	"github.com/stemsi/admin-panel-backend/internal/handler"
	"github.com/stemsi/admin-panel-backend/internal/middleware"
	"github.com/stemsi/admin-panel-backend/internal/response"
	"github.com/stemsi/admin-panel-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	AdminUser *handler.AdminUserHandler
	System    *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// authLimiter may be nil, in which case the auth routes are not rate limited.
func SetupRouter(
	gate *service.Gate,
	handlers *Handlers,
	authLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))

	if cfg.EnableCompression {
		router.Use(middleware.Brotli())
	}

	router.GET("/", handlers.System.Root)
	router.GET("/health", handlers.System.Health)

	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := api.Group("/auth")
	{
		public := auth.Group("")
		if authLimiter != nil {
			public.Use(authLimiter.Middleware())
		}
		public.POST("/signup", handlers.Auth.Signup)
		public.POST("/login", handlers.Auth.Login)

		auth.GET("/me", middleware.RequireUser(gate, log), handlers.Auth.Me)
	}

	// ─── 2. Admin Group ────────────────────────────────────────────────
	admin := api.Group("/admin")
	admin.Use(middleware.RequireUser(gate, log), middleware.RequireAdmin())
	{
		admin.GET("/users", handlers.AdminUser.ListUsers)
		admin.GET("/users/:id", handlers.AdminUser.GetUser)
		admin.PUT("/users/:id", handlers.AdminUser.UpdateUser)
		admin.PATCH("/users/:id", handlers.AdminUser.UpdateUser)
		admin.DELETE("/users/:id", handlers.AdminUser.DeleteUser)
		admin.GET("/stats", handlers.AdminUser.Stats)
	}

	return router
}
