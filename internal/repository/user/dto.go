package user

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/careersetu/internal/domain/account"
)

// userToHash converts a domain User to a map for HSET.
func userToHash(u account.User) map[string]string {
	return map[string]string{
		"id":               u.ID,
		"username":         u.Username,
		"email":            u.Email,
		"password_hash":    u.PasswordHash,
		"profile_complete": strconv.FormatBool(u.ProfileComplete),
		"created_at":       strconv.FormatInt(u.CreatedAt.UnixMilli(), 10),
	}
}

// userFromHash hydrates a domain User from an HGETALL result map.
func userFromHash(m map[string]string) (account.User, error) {
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return account.User{}, fmt.Errorf("invalid created_at: %w", err)
	}

	var complete bool
	if v := m["profile_complete"]; v != "" {
		complete, err = strconv.ParseBool(v)
		if err != nil {
			return account.User{}, fmt.Errorf("invalid profile_complete: %w", err)
		}
	}

	return account.User{
		ID:              m["id"],
		Username:        m["username"],
		Email:           m["email"],
		PasswordHash:    m["password_hash"],
		ProfileComplete: complete,
		CreatedAt:       time.UnixMilli(createdAt).UTC(),
	}, nil
}
