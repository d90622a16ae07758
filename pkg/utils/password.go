package utils

import (
	"fmt"

	"hospital-management-backend/internal/apperror"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

const (
	// MinPasswordLength is the shortest password accepted at registration or change
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt accepts
	MaxPasswordBytes = 72
)

// ValidatePassword checks a new password against the length limits.
// field names the request field in the error message.
func ValidatePassword(field, password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return apperror.Validation(fmt.Sprintf("%s must be at least %d characters", field, MinPasswordLength))
	}
	if len(password) > MaxPasswordBytes {
		return apperror.Validation(fmt.Sprintf("%s must be at most %d bytes", field, MaxPasswordBytes))
	}
	return nil
}

// HashPassword hashes a password that passed ValidatePassword
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches the stored hash. A
// malformed hash never matches.
func ComparePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
