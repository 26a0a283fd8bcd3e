package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository owns the users table. GetByEmail and GetByID return
// (nil, nil) when no row matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, user *User) error
	// RecordFailedLogin atomically increments the failure counter and sets
	// LockedUntil when the incremented count reaches maxAttempts. An already
	// elapsed lock restarts the counter at 1 instead.
	RecordFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int, lockUntil time.Time) error
	ResetLoginAttempts(ctx context.Context, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetEmailVerified(ctx context.Context, id uuid.UUID) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// RefreshTokenRepository owns the refresh_tokens table. Tokens are keyed by
// the SHA-256 hash of the signed token string.
type RefreshTokenRepository interface {
	Store(ctx context.Context, token *RefreshToken) error
	GetByHash(ctx context.Context, hash []byte) (*RefreshToken, error)
	// Rotate revokes the record matching oldHash and inserts successor in one
	// transaction, linking the old record's ReplacedBy to the successor.
	// Exactly one of two concurrent calls with the same oldHash succeeds; the
	// loser gets autherror.ErrInvalidOrRevoked.
	Rotate(ctx context.Context, oldHash []byte, successor *RefreshToken) error
	Revoke(ctx context.Context, hash []byte) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// EphemeralTokenRepository owns the ephemeral_tokens table.
type EphemeralTokenRepository interface {
	Store(ctx context.Context, token *EphemeralToken) error
	// InvalidateUnused marks every unused token of the given purpose as used,
	// so a newly issued link is the only valid one.
	InvalidateUnused(ctx context.Context, userID uuid.UUID, purpose TokenPurpose) error
	// Consume atomically flips IsUsed for an unexpired, unused token and
	// returns it. Two simultaneous calls on the same token yield exactly one
	// success; the loser gets autherror.ErrTokenAlreadyUsed.
	Consume(ctx context.Context, token string, purpose TokenPurpose, now time.Time) (*EphemeralToken, error)
}

// RevocationCache records access tokens rejected before natural expiry.
type RevocationCache interface {
	Blacklist(ctx context.Context, token string, ttl time.Duration) error
	// IsBlacklisted fails open: cache unavailability reads as "not
	// blacklisted" so the signature and expiry checks remain the gate.
	IsBlacklisted(ctx context.Context, token string) bool
}
