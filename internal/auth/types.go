package auth

import (
	"errors"
	"regexp"
	"time"
)

// usernamePattern defines the valid format for usernames:
// alphanumeric, dots, hyphens, underscores, 1-64 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

const (
	// maxUsernameLength is the maximum allowed username length.
	maxUsernameLength = 64

	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// maxPasswordLength is the bcrypt input limit. Go's bcrypt rejects
	// longer passwords rather than truncating them.
	maxPasswordLength = 72
)

// IsValidUsername checks if a username meets format requirements.
// Usernames must be 1-64 characters, alphanumeric with dots, hyphens, underscores.
func IsValidUsername(username string) bool {
	return len(username) <= maxUsernameLength && usernamePattern.MatchString(username)
}

// IsValidPassword checks if a password is between 8 and 72 bytes.
// The upper bound matches bcrypt's input limit.
func IsValidPassword(password string) bool {
	return len(password) >= minPasswordLength && len(password) <= maxPasswordLength
}

// User represents an account identity.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the client-facing view of an account. It carries no
// credential material.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Public returns the client-facing view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Username: u.Username}
}

// Sentinel errors for auth operations.
var (
	// ErrInvalidCredentials covers both unknown-username and
	// wrong-password login failures. Callers must not be able to tell
	// the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")

	// ErrTokenInvalid covers every token verification failure: bad
	// signature, wrong algorithm, expiry, malformed or missing claims.
	ErrTokenInvalid = errors.New("invalid token")

	ErrInvalidUsername = errors.New("username must be 1-64 characters: letters, digits, dots, hyphens, underscores")
	ErrInvalidPassword = errors.New("password must be between 8 and 72 characters")
)
