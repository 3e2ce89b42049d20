// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"skillcircle/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets the platform's requirements
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	// Check maximum length (prevent unreasonable inputs)
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateName checks if a display name meets requirements
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name is required")
	}

	if len(trimmed) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}

	return nil
}

// ValidateRole checks that the role is one of the known user roles
func ValidateRole(role models.UserRole) error {
	switch role {
	case models.UserRoleLearner, models.UserRoleSharer:
		return nil
	default:
		return fmt.Errorf("role must be 'learner' or 'sharer'")
	}
}
