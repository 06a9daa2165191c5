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

// UserService implements the administrative user operations.
type UserService struct {
	users repository.UserStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserStore, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log.With().Str("component", "user_service").Logger(),
		now:   time.Now,
	}
}

// List returns every user, newest first.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, id int) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Stats returns the dashboard counters.
func (s *UserService) Stats(ctx context.Context) (*model.UserStats, error) {
	stats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}

// Update applies patch to the user with the given id on behalf of actor.
// Demoting an admin fails with ErrLastAdmin when no other admin would remain.
func (s *UserService) Update(ctx context.Context, actor *model.User, id int, patch model.UserPatch) (*model.User, error) {
	if patch.Role != nil && !patch.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	var updated *model.User
	err := s.users.Atomic(ctx, func(store repository.UserStore) error {
		if _, err := requireActingAdmin(ctx, store, actor); err != nil {
			return err
		}

		target, err := store.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if patch.Role != nil {
			if err := RequireLastAdminSafe(ctx, store, target, TargetChange{NewRole: *patch.Role}); err != nil {
				return err
			}
			target.Role = *patch.Role
		}
		if patch.IsApproved != nil {
			target.IsApproved = *patch.IsApproved
		}
		if patch.FullName != nil {
			target.FullName = strings.TrimSpace(*patch.FullName)
		}
		target.UpdatedAt = s.now().UTC()

		if err := store.Update(ctx, target); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("update user: %w", err)
		}
		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("actor_id", actor.ID).
		Int("user_id", updated.ID).
		Str("role", updated.Role.String()).
		Bool("is_approved", updated.IsApproved).
		Msg("User updated")

	return updated, nil
}

// Delete permanently removes the user with the given id on behalf of actor.
// Actors cannot delete themselves, and the last admin cannot be deleted.
func (s *UserService) Delete(ctx context.Context, actor *model.User, id int) error {
	if err := RequireNotSelf(actor, id); err != nil {
		return err
	}

	err := s.users.Atomic(ctx, func(store repository.UserStore) error {
		if _, err := requireActingAdmin(ctx, store, actor); err != nil {
			return err
		}

		target, err := store.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if err := RequireLastAdminSafe(ctx, store, target, TargetChange{Delete: true}); err != nil {
			return err
		}

		if err := store.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("actor_id", actor.ID).Int("user_id", id).Msg("User deleted")
	return nil
}

// Promote grants the admin role and approval to the account with email. It
// backs the operator recovery command and bypasses the acting-admin check.
func (s *UserService) Promote(ctx context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)

	var promoted *model.User
	err := s.users.Atomic(ctx, func(store repository.UserStore) error {
		u, err := store.GetByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		u.Role = model.RoleAdmin
		u.IsApproved = true
		u.UpdatedAt = s.now().UTC()
		if err := store.Update(ctx, u); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		promoted = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Warn().Int("user_id", promoted.ID).Msg("User promoted to admin")
	return promoted, nil
}
