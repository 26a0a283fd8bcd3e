package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the identity record. Accounts are never hard-deleted;
// deactivation flips IsActive.
type User struct {
	ID               uuid.UUID
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	Role             string
	IsActive         bool
	IsEmailVerified  bool
	FailedLoginCount int
	LockedUntil      *time.Time
	LastLogin        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName is computed at read time and never persisted.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsLocked reports whether the lockout window is still open. Lock state is
// derived from LockedUntil; nothing sweeps it in the background.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// NormalizeEmail lowercases and trims an email the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
