package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/stemsi/admin-panel-backend/internal/config"
	"github.com/stemsi/admin-panel-backend/internal/logger"
	"github.com/stemsi/admin-panel-backend/internal/repository"
	"github.com/stemsi/admin-panel-backend/internal/service"
)

// promote-admin restores admin access when no admin can sign in, by granting
// the admin role and approval to an existing account.
func main() {
	email := flag.String("email", "", "Email of the account to promote")
	flag.Parse()

	if *email == "" {
		fmt.Println("Usage: promote-admin -email <address>")
		os.Exit(2)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to Store ──────────────────────────────────────────────
	store, closeStore, err := repository.OpenUserStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open user store")
	}
	defer closeStore()

	userService := service.NewUserService(store, log)

	fmt.Println("=== Promote Admin ===")

	user, err := userService.Promote(ctx, *email)
	if errors.Is(err, service.ErrNotFound) {
		fmt.Printf("Error: no account registered as %s\n", *email)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to promote account")
	}

	fmt.Printf("%s (id %d) is now an approved admin.\n", user.Email, user.ID)
}
