package auth

import (
	"context"
	"errors"
	"fmt"
)

// dummyHash is a bcrypt cost-10 hash of a random string. Login runs a
// comparison against it when the username is unknown so that the
// unknown-user path and the wrong-password path take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service orchestrates registration and login. It owns no mutable
// state beyond its collaborators and is safe for concurrent use.
type Service struct {
	users    UserRepository
	secret   string
	ttlHours int
}

// NewService creates an auth service. secret signs session tokens;
// ttlHours sets token lifetime (<=0 selects the 7-day default).
func NewService(users UserRepository, secret string, ttlHours int) *Service {
	return &Service{users: users, secret: secret, ttlHours: ttlHours}
}

// Register creates a new account and returns a session token with the
// public user view.
//
// Validation failures return ErrInvalidUsername or ErrInvalidPassword.
// A taken username returns ErrUsernameExists - the UNIQUE constraint
// is the authority, so concurrent registrations cannot both succeed.
func (s *Service) Register(ctx context.Context, username, password string) (string, *PublicUser, error) {
	if !IsValidUsername(username) {
		return "", nil, ErrInvalidUsername
	}
	if !IsValidPassword(password) {
		return "", nil, ErrInvalidPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("registering user: %w", err)
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return "", nil, ErrUsernameExists
		}
		return "", nil, fmt.Errorf("registering user: %w", err)
	}

	token, err := GenerateToken(user, s.secret, s.ttlHours)
	if err != nil {
		return "", nil, fmt.Errorf("registering user: %w", err)
	}

	return token, user.Public(), nil
}

// Login verifies credentials and returns a session token with the
// public user view.
//
// Unknown usernames and wrong passwords both return
// ErrInvalidCredentials. The unknown-user path still performs a bcrypt
// comparison (against dummyHash) so the two failures are
// indistinguishable by timing as well as by error.
func (s *Service) Login(ctx context.Context, username, password string) (string, *PublicUser, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			VerifyPassword(password, dummyHash)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("logging in: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(user, s.secret, s.ttlHours)
	if err != nil {
		return "", nil, fmt.Errorf("logging in: %w", err)
	}

	return token, user.Public(), nil
}

// GetUser returns the public view of an account by ID.
func (s *Service) GetUser(ctx context.Context, id string) (*PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// ParseToken validates a session token against the service secret.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	return ParseToken(tokenString, s.secret)
}
