package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing. Cost 10 keeps
// login latency tolerable on the small ARM boards Skylark deploys to
// while remaining within current OWASP guidance.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt. The returned
// MCF string embeds the salt and cost, so verification needs no extra
// parameters.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a bcrypt hash.
// It returns false for any mismatch or malformed hash; the comparison
// is constant-time with respect to the password.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
