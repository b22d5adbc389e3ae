// Package auth provides user accounts and token issuance for the HTTP
// layer. It is a collaborator of the asset coordinator, not part of its
// consistency guarantees.
package auth

import (
	"context"
	"errors"
	"time"
)

// User is an account record, keyed by email
type User struct {
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	// ErrUserNotFound indicates no account exists for the given email
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates signup with an already-registered email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore defines the interface for account persistence
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, email string) (*User, error)
}
