// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaultpay/backend/internal/application/adapter"
)

const (
	// defaultBcryptCost is the cost factor for bcrypt hashing.
	defaultBcryptCost = 12

	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// maxPasswordLength is bcrypt's input limit; longer passwords are
	// rejected rather than silently truncated.
	maxPasswordLength = 72
)

// passwordService implements adapter.PasswordService on bcrypt.
type passwordService struct {
	cost int
}

// NewPasswordService creates a password service with the default cost.
func NewPasswordService() adapter.PasswordService {
	return NewPasswordServiceWithCost(defaultBcryptCost)
}

// NewPasswordServiceWithCost creates a password service with an explicit
// bcrypt cost. Costs outside bcrypt's supported range fall back to the default.
func NewPasswordServiceWithCost(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}
	return &passwordService{cost: cost}
}

// HashPassword hashes a plain text password using bcrypt.
func (s *passwordService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain text password against a stored hash.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength rejects passwords outside the accepted length range.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters long", maxPasswordLength)
	}
	return nil
}
