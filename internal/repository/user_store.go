package repository

import (
	"context"
	"errors"

	"github.com/stemsi/admin-panel-backend/internal/model"
)

// Store errors shared by every driver.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the persistence boundary for user accounts.
type UserStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns every user, newest-created first.
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role model.Role) (int, error)
	Stats(ctx context.Context) (*model.UserStats, error)
	// Create inserts u and fills in its ID.
	Create(ctx context.Context, u *model.User) error
	// Update persists the mutable fields of u (full name, role, approval,
	// active flag, updated_at).
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int) error
	Ping(ctx context.Context) error

	// Atomic runs fn against a store bound to a single transaction that is
	// serialized against every other Atomic call. fn's error rolls it back.
	Atomic(ctx context.Context, fn func(store UserStore) error) error
}
