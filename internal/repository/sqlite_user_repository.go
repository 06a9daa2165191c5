package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/stemsi/admin-panel-backend/internal/model"
	"gorm.io/gorm"
)

// SQLiteUserRepository is the embedded user store backed by gorm and SQLite.
// It is meant for single-process deployments and tests.
type SQLiteUserRepository struct {
	db   *gorm.DB
	mu   *sync.Mutex
	inTx bool
}

// NewSQLiteUserRepository creates a store on an opened, migrated gorm handle.
func NewSQLiteUserRepository(db *gorm.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db, mu: &sync.Mutex{}}
}

func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return ErrDuplicateEmail
	default:
		return err
	}
}

func (r *SQLiteUserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &u, nil
}

func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &u, nil
}

func (r *SQLiteUserRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error
	return users, err
}

func (r *SQLiteUserRepository) Count(ctx context.Context) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return int(n), err
}

func (r *SQLiteUserRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&n).Error
	return int(n), err
}

func (r *SQLiteUserRepository) Stats(ctx context.Context) (*model.UserStats, error) {
	var row struct {
		Total    int
		Admins   int
		Teachers int
		Students int
		Pending  int
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0) AS admins,
			COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0) AS teachers,
			COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0) AS students,
			COALESCE(SUM(CASE WHEN is_approved THEN 0 ELSE 1 END), 0) AS pending
		 FROM users`,
		model.RoleAdmin, model.RoleTeacher, model.RoleStudent,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &model.UserStats{
		Total:    row.Total,
		Admins:   row.Admins,
		Teachers: row.Teachers,
		Students: row.Students,
		Pending:  row.Pending,
	}, nil
}

func (r *SQLiteUserRepository) Create(ctx context.Context, u *model.User) error {
	return translateGormError(r.db.WithContext(ctx).Create(u).Error)
}

func (r *SQLiteUserRepository) Update(ctx context.Context, u *model.User) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"full_name":   u.FullName,
		"role":        u.Role,
		"is_approved": u.IsApproved,
		"is_active":   u.IsActive,
		"updated_at":  u.UpdatedAt,
	})
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteUserRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteUserRepository) Ping(ctx context.Context) error {
	if r.inTx {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Atomic serializes fn behind a process-wide mutex and runs it in a gorm
// transaction.
func (r *SQLiteUserRepository) Atomic(ctx context.Context, fn func(store UserStore) error) error {
	if r.inTx {
		return fn(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SQLiteUserRepository{db: tx, mu: r.mu, inTx: true})
	})
}
