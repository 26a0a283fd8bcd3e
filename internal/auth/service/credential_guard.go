package service

import (
	"context"
	"time"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
	"github.com/KshitijChavan-Stack/authflow/internal/logger"
	"github.com/KshitijChavan-Stack/authflow/internal/password"
)

// CredentialGuard verifies login attempts and drives the lockout state
// machine: Unlocked -> Locked on the Nth consecutive failure, Locked ->
// Unlocked only by the lock window elapsing, checked lazily on the next
// attempt.
type CredentialGuard struct {
	users       domain.UserRepository
	hasher      *password.Hasher
	maxAttempts int
	lockWindow  time.Duration
	log         *logger.Logger
}

func NewCredentialGuard(users domain.UserRepository, hasher *password.Hasher, maxAttempts int, lockWindow time.Duration, log *logger.Logger) *CredentialGuard {
	return &CredentialGuard{
		users:       users,
		hasher:      hasher,
		maxAttempts: maxAttempts,
		lockWindow:  lockWindow,
		log:         log,
	}
}

// Verify checks the supplied password against the stored credentials.
// A missing account and a wrong password both return ErrInvalidCredentials
// so callers cannot enumerate accounts; the missing-account branch
// still pays one hash comparison to keep timing comparable.
func (g *CredentialGuard) Verify(ctx context.Context, email, suppliedPassword string) (*domain.User, error) {
	user, err := g.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if user == nil {
		g.hasher.CompareDummy(suppliedPassword)

		return nil, autherror.ErrInvalidCredentials
	}

	now := time.Now()

	if user.IsLocked(now) {
		g.log.Warn("login attempt on locked account", "user_id", user.ID)

		return nil, autherror.ErrAccountLocked
	}

	if !g.hasher.Compare(user.PasswordHash, suppliedPassword) {
		if err := g.users.RecordFailedLogin(ctx, user.ID, g.maxAttempts, now.Add(g.lockWindow)); err != nil {
			g.log.Error("failed to record failed login", "user_id", user.ID, "error", err)
		}

		if user.FailedLoginCount+1 >= g.maxAttempts {
			g.log.Warn("account locked after repeated failures", "user_id", user.ID)
		}

		return nil, autherror.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, autherror.ErrAccountDeactivated
	}

	if !user.IsEmailVerified {
		return nil, autherror.ErrEmailNotVerified
	}

	// Lazy reset: a correct password after the lock window (or after any
	// failures) clears the counter and the stale lock timestamp.
	if user.FailedLoginCount > 0 || user.LockedUntil != nil {
		if err := g.users.ResetLoginAttempts(ctx, user.ID); err != nil {
			return nil, err
		}

		user.FailedLoginCount = 0
		user.LockedUntil = nil
	}

	return user, nil
}
