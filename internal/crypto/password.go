package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted one-way digest from a plaintext password
// using bcrypt. Two calls with the same password produce different digests
// because bcrypt embeds a random salt in the output.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// digest. A malformed digest is treated as a mismatch, never an error:
// login flows must not distinguish a broken record from a wrong password.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
