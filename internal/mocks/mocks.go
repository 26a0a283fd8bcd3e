// Package mocks contains hand-written testify mocks for the domain
// interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
)

type UserRepository struct {
	mock.Mock
}

var _ domain.UserRepository = (*UserRepository)(nil)

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)

	return user, args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)

	return user, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) RecordFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int, lockUntil time.Time) error {
	return m.Called(ctx, id, maxAttempts, lockUntil).Error(0)
}

func (m *UserRepository) ResetLoginAttempts(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *UserRepository) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

type RefreshTokenRepository struct {
	mock.Mock
}

var _ domain.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

func (m *RefreshTokenRepository) Store(ctx context.Context, token *domain.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *RefreshTokenRepository) GetByHash(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
	args := m.Called(ctx, hash)
	token, _ := args.Get(0).(*domain.RefreshToken)

	return token, args.Error(1)
}

func (m *RefreshTokenRepository) Rotate(ctx context.Context, oldHash []byte, successor *domain.RefreshToken) error {
	return m.Called(ctx, oldHash, successor).Error(0)
}

func (m *RefreshTokenRepository) Revoke(ctx context.Context, hash []byte) error {
	return m.Called(ctx, hash).Error(0)
}

func (m *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type EphemeralTokenRepository struct {
	mock.Mock
}

var _ domain.EphemeralTokenRepository = (*EphemeralTokenRepository)(nil)

func (m *EphemeralTokenRepository) Store(ctx context.Context, token *domain.EphemeralToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *EphemeralTokenRepository) InvalidateUnused(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose) error {
	return m.Called(ctx, userID, purpose).Error(0)
}

func (m *EphemeralTokenRepository) Consume(ctx context.Context, token string, purpose domain.TokenPurpose, now time.Time) (*domain.EphemeralToken, error) {
	args := m.Called(ctx, token, purpose, now)
	t, _ := args.Get(0).(*domain.EphemeralToken)

	return t, args.Error(1)
}

type RevocationCache struct {
	mock.Mock
}

var _ domain.RevocationCache = (*RevocationCache)(nil)

func (m *RevocationCache) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	return m.Called(ctx, token, ttl).Error(0)
}

func (m *RevocationCache) IsBlacklisted(ctx context.Context, token string) bool {
	return m.Called(ctx, token).Bool(0)
}

type Sender struct {
	mock.Mock
}

func (m *Sender) SendVerificationEmail(ctx context.Context, to, firstName, token string) error {
	return m.Called(ctx, to, firstName, token).Error(0)
}

func (m *Sender) SendWelcomeEmail(ctx context.Context, to, firstName string) error {
	return m.Called(ctx, to, firstName).Error(0)
}

func (m *Sender) SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error {
	return m.Called(ctx, to, firstName, token).Error(0)
}
