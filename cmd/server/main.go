package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/admin-panel-backend/internal/config"
	"github.com/stemsi/admin-panel-backend/internal/database"
	"github.com/stemsi/admin-panel-backend/internal/handler"
	"github.com/stemsi/admin-panel-backend/internal/logger"
	"github.com/stemsi/admin-panel-backend/internal/middleware"
	"github.com/stemsi/admin-panel-backend/internal/repository"
	"github.com/stemsi/admin-panel-backend/internal/router"
	"github.com/stemsi/admin-panel-backend/internal/service"
	"github.com/stemsi/admin-panel-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Admin Panel Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Store ──────────────────────────────────────────────
	store, closeStore, err := repository.OpenUserStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open user store")
	}
	defer closeStore()

	// ─── Connect to Redis (login throttle only) ────────────────────────
	var throttle service.LoginThrottle
	if cfg.LoginThrottleEnabled() {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		throttle = service.NewRedisLoginThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginAttemptWindow)
	} else {
		log.Warn().Msg("Login throttling disabled")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenIssuer(cfg, log)
	authService, err := service.NewAuthService(store, hasher, tokens, throttle, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}
	userService := service.NewUserService(store, log)
	gate := service.NewGate(store, tokens)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, log),
		AdminUser: handler.NewAdminUserHandler(userService, log),
		System:    handler.NewSystemHandler(store, log),
	}

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	defer authLimiter.Close()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(gate, handlers, authLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
