package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Bcrypt hashes and verifies passwords with bcrypt at a fixed cost.
type Bcrypt struct {
	cost int
}

var (
	_ PasswordVerifier = (*Bcrypt)(nil)
	_ PasswordHasher   = (*Bcrypt)(nil)
)

// NewBcrypt creates a Bcrypt using cost, or bcrypt.DefaultCost when cost is
// outside bcrypt's accepted range.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash implements PasswordHasher.
func (b *Bcrypt) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare implements PasswordVerifier.
func (b *Bcrypt) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
