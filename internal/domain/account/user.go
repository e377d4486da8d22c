// Package account models registered users.
package account

import (
	"net/mail"
	"strings"
	"time"

	"github.com/kailas-cloud/careersetu/internal/domain"
)

// Username limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 64
)

// User is a registered user.
type User struct {
	ID              string
	Username        string
	Email           string
	PasswordHash    string
	ProfileComplete bool
	CreatedAt       time.Time
}

// NormalizeUsername trims and lowercases a username so lookups are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateSignup checks signup input. minPassword is the configured minimum password length.
func ValidateSignup(username, email, password string, minPassword int) error {
	name := NormalizeUsername(username)
	if len(name) < MinUsernameLength || len(name) > MaxUsernameLength {
		return domain.NewValidation("username", "must be between 3 and 64 characters")
	}
	if strings.ContainsAny(name, " :") {
		return domain.NewValidation("username", "must not contain spaces or colons")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.NewValidation("email", "is not a valid address")
		}
	}
	if len(password) < minPassword {
		return domain.NewValidation("password", "is too short")
	}
	return nil
}
