package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the durable record of one issued refresh token. Rotation
// links records into a chain: each rotation revokes the old record and sets
// its ReplacedBy to the successor's ID, so a chain has at most one active
// tail.
type RefreshToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  []byte
	IssuedAt   time.Time
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy *uuid.UUID
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

// Active reports whether the record can still be exchanged.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// TokenPurpose distinguishes the single-use verification token kinds.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// EphemeralToken is a single-use, time-boxed token for out-of-band
// verification. IsUsed transitions false to true exactly once; expired rows
// are left to passive cleanup.
type EphemeralToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	Purpose   TokenPurpose
	ExpiresAt time.Time
	IsUsed    bool
	RequestIP string
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry.
func (t *EphemeralToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
