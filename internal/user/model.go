package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
)

// Filter defines parameters for listing users.
type Filter struct {
	Email    string
	IsActive *bool
	Page     int
	PageSize int
}

// User is a staff account: dispatchers, crew leads and administrators.
type User struct {
	ID            string // UUID
	Email         string
	PasswordHash  string
	DisplayName   *string
	IsActive      bool
	IsSystemAdmin bool
	CreatedAt     time.Time
	LastLoginAt   *time.Time
}
