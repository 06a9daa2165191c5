package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/admin-panel-backend/internal/config"
	"github.com/stemsi/admin-panel-backend/internal/database"
	"github.com/stemsi/admin-panel-backend/internal/model"
	"github.com/stemsi/admin-panel-backend/internal/repository"
	"github.com/stemsi/admin-panel-backend/internal/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPassword = "correct-horse"
	testClientIP = "192.0.2.10"
)

type testEnv struct {
	cfg    *config.Config
	store  *repository.SQLiteUserRepository
	hasher *service.PasswordHasher
	tokens *service.TokenIssuer
	auth   *service.AuthService
	users  *service.UserService
	gate   *service.Gate
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTIssuer:  "admin-panel-test",
		JWTExpiry:  30 * time.Minute,
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestEnv(t *testing.T, throttle service.LoginThrottle) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLite(context.Background(), dsn, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := testConfig()
	store := repository.NewSQLiteUserRepository(db)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenIssuer(cfg, zerolog.Nop())
	auth, err := service.NewAuthService(store, hasher, tokens, throttle, zerolog.Nop())
	require.NoError(t, err)

	return &testEnv{
		cfg:    cfg,
		store:  store,
		hasher: hasher,
		tokens: tokens,
		auth:   auth,
		users:  service.NewUserService(store, zerolog.Nop()),
		gate:   service.NewGate(store, tokens),
	}
}

func (e *testEnv) signup(t *testing.T, email string, role model.Role) *model.User {
	t.Helper()
	u, err := e.auth.Signup(context.Background(), model.SignupRequest{
		Email:    email,
		FullName: "User " + email,
		Password: testPassword,
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

// signupAdmin creates an approved admin: the first signup, or a later signup
// promoted through the update path by actor.
func (e *testEnv) signupAdmin(t *testing.T, actor *model.User, email string) *model.User {
	t.Helper()
	u := e.signup(t, email, model.RoleAdmin)
	if actor == nil {
		return u
	}
	approved := true
	updated, err := e.users.Update(context.Background(), actor, u.ID, model.UserPatch{IsApproved: &approved})
	require.NoError(t, err)
	return updated
}

func rolePtr(r model.Role) *model.Role { return &r }
func boolPtr(b bool) *bool             { return &b }
func strPtr(s string) *string          { return &s }
