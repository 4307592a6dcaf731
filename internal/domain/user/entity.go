package user

import "errors"

// User represents a user entity in the system.
type User struct {
	ID           string `json:"id"`    // ID is the opaque identifier assigned at creation
	Name         string `json:"name"`  // Name is the display name of the user
	Email        string `json:"email"` // Email is the unique email address of the user
	PasswordHash string `json:"-"`     // PasswordHash is the one-way hash of the password, never serialized
}

// Store signals shared by every Repository implementation.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

// IDGenerator returns a new globally unique identifier.
type IDGenerator func() string

// IDValidator reports whether a string is a well-formed identifier.
type IDValidator func(id string) bool
