package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stemsi/admin-panel-backend/internal/config"
	"github.com/stemsi/admin-panel-backend/internal/logger"
	"github.com/stemsi/admin-panel-backend/internal/model"
	"github.com/stemsi/admin-panel-backend/internal/repository"
	"github.com/stemsi/admin-panel-backend/internal/service"
)

func main() {
	count := flag.Int("count", 20, "Number of demo accounts to create")
	password := flag.String("password", "demo-password", "Password for every demo account")
	approve := flag.Bool("approve", false, "Approve seeded accounts on behalf of the first admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, closeStore, err := repository.OpenUserStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open user store")
	}
	defer closeStore()

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	authService, err := service.NewAuthService(store, hasher, service.NewTokenIssuer(cfg, log), nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}
	userService := service.NewUserService(store, log)

	var actor *model.User
	if *approve {
		actor = firstApprovedAdmin(ctx, userService)
		if actor == nil {
			fmt.Println("No approved admin found; seeded accounts will stay pending.")
		}
	}

	fmt.Printf("=== Seeding %d Users ===\n", *count)

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Lukman Hakim", "Maya Septiana", "Nanda Pratama",
		"Oki Setiana", "Putri Dian", "Rafi Ahmad", "Toni Setiawan", "Wahyu Hidayat",
	}

	successCount := 0
	for i := 0; i < *count; i++ {
		role := model.RoleStudent
		if i%5 == 0 {
			role = model.RoleTeacher
		}
		name := names[i%len(names)]
		email := fmt.Sprintf("%s.%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i+1)

		user, err := authService.Signup(ctx, model.SignupRequest{
			Email:    email,
			FullName: name,
			Password: *password,
			Role:     role,
		})
		if errors.Is(err, service.ErrDuplicateEmail) {
			fmt.Printf("Skipping %s: already registered\n", email)
			continue
		}
		if err != nil {
			fmt.Printf("Error creating %s: %v\n", email, err)
			continue
		}

		if actor != nil && !user.IsApproved {
			approved := true
			if _, err := userService.Update(ctx, actor, user.ID, model.UserPatch{IsApproved: &approved}); err != nil {
				fmt.Printf("Error approving %s: %v\n", email, err)
			}
		}

		successCount++
		if successCount%10 == 0 {
			fmt.Printf("Created %d users...\n", successCount)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d users.\n", successCount, *count)
}

func firstApprovedAdmin(ctx context.Context, users *service.UserService) *model.User {
	all, err := users.List(ctx)
	if err != nil {
		return nil
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Role.IsAdmin() && all[i].IsApproved {
			return &all[i]
		}
	}
	return nil
}
