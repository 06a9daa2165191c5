package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/admin-panel-backend/internal/model"
)

// userMutationLockKey is the pg_advisory_xact_lock key serializing mutating
// user operations (first-user rule, last-admin guard).
const userMutationLockKey int64 = 0x75736572 // "user"

const pgUniqueViolation = "23505"

const userColumns = `id, email, full_name, hashed_password, role, is_approved, is_active, created_at, updated_at`

// querier is the subset of pgxpool.Pool and pgx.Tx used by the repository.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository handles user data access on PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
	db   querier
	inTx bool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool, db: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role,
		&u.IsApproved, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// List retrieves all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Count returns the number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// CountByRole returns the number of users holding role.
func (r *UserRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	return n, err
}

// Stats computes the dashboard counters in a single scan.
func (r *UserRepository) Stats(ctx context.Context) (*model.UserStats, error) {
	s := &model.UserStats{}
	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE role = $1),
			COUNT(*) FILTER (WHERE role = $2),
			COUNT(*) FILTER (WHERE role = $3),
			COUNT(*) FILTER (WHERE NOT is_approved)
		 FROM users`,
		model.RoleAdmin, model.RoleTeacher, model.RoleStudent,
	).Scan(&s.Total, &s.Admins, &s.Teachers, &s.Students, &s.Pending)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, full_name, hashed_password, role, is_approved, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		u.Email, u.FullName, u.PasswordHash, u.Role, u.IsApproved, u.IsActive, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

// Update persists the mutable fields of u.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET full_name = $1, role = $2, is_approved = $3, is_active = $4, updated_at = $5
		 WHERE id = $6`,
		u.FullName, u.Role, u.IsApproved, u.IsActive, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user permanently.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks connectivity.
func (r *UserRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}
	return r.pool.Ping(ctx)
}

// Atomic runs fn inside a transaction holding the user mutation advisory lock.
func (r *UserRepository) Atomic(ctx context.Context, fn func(store UserStore) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userMutationLockKey); err != nil {
		return fmt.Errorf("acquire user lock: %w", err)
	}

	if err := fn(&UserRepository{db: tx, inTx: true}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
