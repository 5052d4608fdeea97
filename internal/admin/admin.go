package admin

import (
	"errors"
	"time"
)

// Role controls what an account may do. Admins manage students, records and
// accounts; viewers only read records and reports.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Admin is a staff account. PasswordHash never serializes.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	// ErrNotFound means no account matches the given id.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateUsername means the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail means the email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
