package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
	"github.com/KshitijChavan-Stack/authflow/internal/logger"
	"github.com/KshitijChavan-Stack/authflow/internal/mocks"
	"github.com/KshitijChavan-Stack/authflow/internal/password"
)

const testPassword = "Password1!"

func newTestHasher() *password.Hasher {
	return password.NewHasher(bcrypt.MinCost, 4)
}

func newGuard(users *mocks.UserRepository) *CredentialGuard {
	return NewCredentialGuard(users, newTestHasher(), 5, 2*time.Hour, logger.New(0))
}

func verifiedUser(t *testing.T) *domain.User {
	t.Helper()

	hash, err := newTestHasher().Hash(testPassword)
	require.NoError(t, err)

	return &domain.User{
		ID:              uuid.New(),
		Email:           "test@example.com",
		PasswordHash:    hash,
		FirstName:       "Test",
		LastName:        "User",
		Role:            "user",
		IsActive:        true,
		IsEmailVerified: true,
	}
}

func TestCredentialGuard_Success(t *testing.T) {
	users := &mocks.UserRepository{}
	user := verifiedUser(t)

	users.On("GetByEmail", mock.Anything, "test@example.com").Return(user, nil)

	got, err := newGuard(users).Verify(context.Background(), "Test@Example.com ", testPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// No failures on record means no reset round-trip.
	users.AssertNotCalled(t, "ResetLoginAttempts", mock.Anything, mock.Anything)
}

func TestCredentialGuard_UnknownEmail(t *testing.T) {
	users := &mocks.UserRepository{}
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	_, err := newGuard(users).Verify(context.Background(), "nobody@example.com", testPassword)
	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
}

func TestCredentialGuard_WrongPassword(t *testing.T) {
	users := &mocks.UserRepository{}
	user := verifiedUser(t)

	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	users.On("RecordFailedLogin", mock.Anything, user.ID, 5, mock.AnythingOfType("time.Time")).Return(nil)

	_, err := newGuard(users).Verify(context.Background(), user.Email, "WrongPassword1")
	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)

	users.AssertCalled(t, "RecordFailedLogin", mock.Anything, user.ID, 5, mock.AnythingOfType("time.Time"))
}

func TestCredentialGuard_LockedAccountRejectsCorrectPassword(t *testing.T) {
	users := &mocks.UserRepository{}
	user := verifiedUser(t)
	lockedUntil := time.Now().Add(time.Hour)
	user.FailedLoginCount = 5
	user.LockedUntil = &lockedUntil

	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := newGuard(users).Verify(context.Background(), user.Email, testPassword)
	assert.ErrorIs(t, err, autherror.ErrAccountLocked)

	// The lock check short-circuits before any counter update.
	users.AssertNotCalled(t, "RecordFailedLogin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCredentialGuard_LazyLockReset(t *testing.T) {
	users := &mocks.UserRepository{}
	user := verifiedUser(t)
	expired := time.Now().Add(-time.Minute)
	user.FailedLoginCount = 5
	user.LockedUntil = &expired

	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	users.On("ResetLoginAttempts", mock.Anything, user.ID).Return(nil)

	got, err := newGuard(users).Verify(context.Background(), user.Email, testPassword)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FailedLoginCount)
	assert.Nil(t, got.LockedUntil)

	users.AssertCalled(t, "ResetLoginAttempts", mock.Anything, user.ID)
}

func TestCredentialGuard_DeactivatedAccount(t *testing.T) {
	users := &mocks.UserRepository{}
	user := verifiedUser(t)
	user.IsActive = false

	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := newGuard(users).Verify(context.Background(), user.Email, testPassword)
	assert.ErrorIs(t, err, autherror.ErrAccountDeactivated)
}

func TestCredentialGuard_UnverifiedEmail(t *testing.T) {
	users := &mocks.UserRepository{}
	user := verifiedUser(t)
	user.IsEmailVerified = false

	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := newGuard(users).Verify(context.Background(), user.Email, testPassword)
	assert.ErrorIs(t, err, autherror.ErrEmailNotVerified)
}
