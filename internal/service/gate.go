package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stemsi/admin-panel-backend/internal/model"
	"github.com/stemsi/admin-panel-backend/internal/repository"
)

// Gate resolves bearer tokens to users and holds the authorization rules
// protecting the admin role.
type Gate struct {
	users  repository.UserStore
	tokens *TokenIssuer
}

// NewGate creates a new Gate.
func NewGate(users repository.UserStore, tokens *TokenIssuer) *Gate {
	return &Gate{users: users, tokens: tokens}
}

// ResolveCurrentUser validates token and loads the user it names. The user is
// read fresh so role or approval changes apply to tokens already issued.
func (g *Gate) ResolveCurrentUser(ctx context.Context, token string) (*model.User, error) {
	claims, err := g.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := g.users.GetByEmail(ctx, claims.Email())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}
	return user, nil
}

// RequireAdmin passes only users holding the admin role.
func RequireAdmin(user *model.User) error {
	if user == nil || !user.Role.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// RequireNotSelf blocks an actor from targeting their own account.
func RequireNotSelf(actor *model.User, targetID int) error {
	if actor.ID == targetID {
		return ErrSelfAction
	}
	return nil
}

// TargetChange describes a pending mutation of a user: either a deletion or
// a move to NewRole.
type TargetChange struct {
	Delete  bool
	NewRole model.Role
}

// RequireLastAdminSafe fails with ErrLastAdmin when change would strip admin
// status from the only remaining admin. It must run inside the same atomic
// scope as the mutation it guards.
func RequireLastAdminSafe(ctx context.Context, store repository.UserStore, target *model.User, change TargetChange) error {
	if !target.Role.IsAdmin() {
		return nil
	}
	if !change.Delete && change.NewRole.IsAdmin() {
		return nil
	}

	admins, err := store.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}

// requireActingAdmin re-reads the actor inside an atomic scope so a request
// authorized before a concurrent demotion cannot act on stale privileges.
func requireActingAdmin(ctx context.Context, store repository.UserStore, actor *model.User) (*model.User, error) {
	current, err := store.GetByID(ctx, actor.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("reload actor: %w", err)
	}
	if err := RequireAdmin(current); err != nil {
		return nil, err
	}
	return current, nil
}
