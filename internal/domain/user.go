package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxTitleLength    = 255
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User represents an authenticated owner of assets, transactions and
// reminders. Every stored record is scoped to its user.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidateTitle validates a display title for assets and reminders.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return ErrInvalidTitle
	}

	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidTitle, MaxTitleLength)
	}

	return nil
}
