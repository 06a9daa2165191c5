package model

import "time"

// User is an account of the admin panel.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:hashed_password;size:255;not null"`
	Role         Role      `json:"role" gorm:"size:32;not null;index"`
	IsApproved   bool      `json:"is_approved" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;index"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}

// TableName pins the table name shared by every store driver.
func (User) TableName() string {
	return "users"
}

// UserPatch is a partial update of a user. Nil fields are left untouched;
// non-nil fields are applied even when they hold a zero value.
type UserPatch struct {
	Role       *Role
	IsApproved *bool
	FullName   *string
}

// IsEmpty reports whether the patch carries no field.
func (p UserPatch) IsEmpty() bool {
	return p.Role == nil && p.IsApproved == nil && p.FullName == nil
}

// UserStats summarizes the user table.
type UserStats struct {
	Total    int `json:"total"`
	Admins   int `json:"admins"`
	Teachers int `json:"teachers"`
	Students int `json:"students"`
	Pending  int `json:"pending"`
}

// SignupRequest is the payload for account registration.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     Role   `json:"role" binding:"required,role"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        Role      `json:"role"`
	IsApproved  bool      `json:"is_approved"`
}

// UpdateUserRequest is the payload for the admin update endpoint.
type UpdateUserRequest struct {
	Role       *Role   `json:"role" binding:"omitempty,role"`
	IsApproved *bool   `json:"is_approved"`
	FullName   *string `json:"full_name" binding:"omitempty,max=255"`
}

// Patch converts the request into a UserPatch.
func (r UpdateUserRequest) Patch() UserPatch {
	return UserPatch{Role: r.Role, IsApproved: r.IsApproved, FullName: r.FullName}
}

// DeleteUserResponse confirms a deletion.
type DeleteUserResponse struct {
	Message       string `json:"message"`
	DeletedUserID int    `json:"deleted_user_id"`
}
