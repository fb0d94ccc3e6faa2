// Package storage persists user accounts.
//
// [UserStore] has two implementations:
//   - [MemoryStore]: process-local, for tests and `serve --memory`
//   - [MongoStore]: MongoDB "users" collection with a unique email index
//
// Emails are compared case-insensitively: both stores lower-case and trim
// the address before reading or writing.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicate is returned when a user with the same email exists.
	ErrDuplicate = errors.New("user already exists")
)

// User is a stored account. PasswordHash is a bcrypt hash, never a
// plaintext password.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore is the interface for user storage backends.
type UserStore interface {
	// Create stores a new user and returns it with ID and CreatedAt set.
	// Returns ErrDuplicate if the email is taken.
	Create(ctx context.Context, email, passwordHash string) (User, error)

	// FindByEmail returns the user with the given email or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (User, error)

	// FindByID returns the user with the given id or ErrNotFound.
	FindByID(ctx context.Context, id string) (User, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NormalizeEmail returns the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
