package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/stemsi/admin-panel-backend/internal/config"
	"github.com/stemsi/admin-panel-backend/internal/logger"
	"github.com/stemsi/admin-panel-backend/internal/model"
	"github.com/stemsi/admin-panel-backend/internal/repository"
	"github.com/stemsi/admin-panel-backend/internal/service"
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

	ctx := context.Background()

	// ─── Connect to Store ──────────────────────────────────────────────
	store, closeStore, err := repository.OpenUserStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open user store")
	}
	defer closeStore()

	// ─── Initialize Service ────────────────────────────────────────────
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenIssuer(cfg, log)
	authService, err := service.NewAuthService(store, hasher, tokens, nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin Account ===")

	fmt.Print("Enter Full Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Full name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(bytePassword)
	if len(password) < 6 || len(password) > 72 {
		fmt.Println("Error: Password must be between 6 and 72 characters")
		return
	}

	user, err := authService.Signup(ctx, model.SignupRequest{
		Email:    email,
		FullName: name,
		Password: password,
		Role:     model.RoleAdmin,
	})
	if errors.Is(err, service.ErrDuplicateEmail) {
		fmt.Printf("Error: %s is already registered\n", email)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("Created %s (id %d, role %s)\n", user.Email, user.ID, user.Role)
	if !user.IsApproved {
		fmt.Println("Other accounts already exist, so this one awaits approval by an existing admin.")
		fmt.Println("Use promote-admin to approve it directly if no admin is available.")
	}
}
