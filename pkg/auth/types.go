package auth

import (
	"context"
	"errors"
	"time"
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	APIKey       string
	CreatedAt    time.Time
}

// Session is an issued authentication result returned to clients.
type Session struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Token     string `json:"token,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	Anonymous bool   `json:"anonymous"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// ErrEmailTaken is returned by the store when the email is already
// registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound is returned by the store when no account matches.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials covers both unknown email and wrong password so
// responses do not reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned when a session token fails verification.
var ErrInvalidToken = errors.New("invalid token")
