package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/admin-panel-backend/internal/model"
	"github.com/stemsi/admin-panel-backend/internal/repository"
)

// TokenTypeBearer is the token_type reported by login.
const TokenTypeBearer = "bearer"

// AuthService handles signup and login.
type AuthService struct {
	users    repository.UserStore
	hasher   *PasswordHasher
	tokens   *TokenIssuer
	throttle LoginThrottle
	log      zerolog.Logger
	now      func() time.Time

	// dummyHash is verified against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewAuthService creates a new AuthService. A nil throttle disables login throttling.
func NewAuthService(
	users repository.UserStore,
	hasher *PasswordHasher,
	tokens *TokenIssuer,
	throttle LoginThrottle,
	log zerolog.Logger,
) (*AuthService, error) {
	if throttle == nil {
		throttle = NoopLoginThrottle{}
	}
	dummy, err := hasher.Hash("admin-panel-dummy-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		throttle:  throttle,
		log:       log.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new account. The first account ever created becomes an
// approved admin; every later account keeps its requested role and waits for
// approval.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if !req.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	email := normalizeEmail(req.Email)

	// Taken emails are rejected before hashing. The check inside Atomic
	// stays authoritative for concurrent signups.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var created *model.User
	err = s.users.Atomic(ctx, func(store repository.UserStore) error {
		_, err := store.GetByEmail(ctx, email)
		if err == nil {
			return ErrDuplicateEmail
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		count, err := store.Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}

		now := s.now().UTC()
		u := &model.User{
			Email:        email,
			FullName:     strings.TrimSpace(req.FullName),
			PasswordHash: hash,
			Role:         req.Role,
			IsApproved:   false,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if count == 0 {
			u.Role = model.RoleAdmin
			u.IsApproved = true
		}

		if err := store.Create(ctx, u); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("create user: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("user_id", created.ID).
		Str("role", created.Role.String()).
		Bool("is_approved", created.IsApproved).
		Msg("User signed up")

	return created, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords fail identically; correct credentials on an unapproved
// account fail with ErrPendingApproval before any token exists. Failures are
// counted per clientIP and email pair.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*model.LoginResponse, error) {
	email = normalizeEmail(email)

	if err := s.throttle.Allow(ctx, clientIP, email); err != nil {
		if errors.Is(err, ErrTooManyAttempts) {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("Login throttle unavailable")
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.hasher.Verify(password, s.dummyHash)
		s.recordFailure(ctx, clientIP, email)
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, clientIP, email)
		return nil, ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, clientIP, email); err != nil {
		s.log.Warn().Err(err).Msg("Login throttle reset failed")
	}

	if !user.IsApproved {
		return nil, ErrPendingApproval
	}

	token, expiresAt, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", user.ID).Msg("User logged in")

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   expiresAt,
		Role:        user.Role,
		IsApproved:  user.IsApproved,
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, clientIP, email string) {
	if err := s.throttle.Failure(ctx, clientIP, email); err != nil {
		s.log.Warn().Err(err).Msg("Login throttle update failed")
	}
}
