package model

import "time"

// User is a staff account (doctors included). Lives in the auth schema.
type User struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	BirthDate *Date     `db:"birth_date" json:"birth_date,omitempty"`
	RoleID    int64     `db:"role_id" json:"role_id"`
	RoleName  string    `db:"role_name" json:"role,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the shallow projection embedded in appointments.
type UserSummary struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	BirthDate string `json:"birth_date"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the login payload.
type TokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateUserRequest is a partial update; the role is resolved by name.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	BirthDate *string `json:"birth_date"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"is_active"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserFilters narrows the user listing. The birth-date range is inclusive
// and requires both bounds.
type UserFilters struct {
	Role           string
	FirstName      string
	StartBirthDate *Date
	EndBirthDate   *Date
}
