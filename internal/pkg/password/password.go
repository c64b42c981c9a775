// Package password wraps credential hashing for account passwords and the
// opaque tokens (refresh, password reset) that are persisted hashed.
package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor for account passwords
const DefaultCost = 12

// Hash derives a bcrypt hash from a plain password
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the plain password matches the stored hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// HashToken returns the hex SHA-256 digest of a token. Refresh and reset
// tokens are stored as digests so a leaked table cannot be replayed.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ValidatePassword enforces the minimum password length of 8 characters
func ValidatePassword(password string) bool {
	return len(password) >= 8
}
