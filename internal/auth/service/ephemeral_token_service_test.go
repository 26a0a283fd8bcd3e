package service

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
	"github.com/KshitijChavan-Stack/authflow/internal/mocks"
)

func TestEphemeralTokenService_Issue(t *testing.T) {
	repo := &mocks.EphemeralTokenRepository{}
	svc := NewEphemeralTokenService(repo)
	userID := uuid.New()

	var stored *domain.EphemeralToken
	repo.On("Store", mock.Anything, mock.AnythingOfType("*domain.EphemeralToken")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.EphemeralToken)
		}).
		Return(nil)

	value, err := svc.Issue(context.Background(), userID, domain.PurposeEmailVerification, 24*time.Hour, "")
	require.NoError(t, err)

	// 256 bits of entropy rendered as hex.
	assert.Len(t, value, 64)
	_, err = hex.DecodeString(value)
	assert.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, value, stored.Token)
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, domain.PurposeEmailVerification, stored.Purpose)
	assert.False(t, stored.IsUsed)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), stored.ExpiresAt, 5*time.Second)
}

func TestEphemeralTokenService_IssueUniqueValues(t *testing.T) {
	repo := &mocks.EphemeralTokenRepository{}
	svc := NewEphemeralTokenService(repo)

	repo.On("Store", mock.Anything, mock.Anything).Return(nil)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		value, err := svc.Issue(context.Background(), uuid.New(), domain.PurposePasswordReset, time.Hour, "")
		require.NoError(t, err)
		assert.False(t, seen[value])
		seen[value] = true
	}
}

func TestEphemeralTokenService_IssueSuperseding(t *testing.T) {
	repo := &mocks.EphemeralTokenRepository{}
	svc := NewEphemeralTokenService(repo)
	userID := uuid.New()

	repo.On("InvalidateUnused", mock.Anything, userID, domain.PurposePasswordReset).Return(nil)
	repo.On("Store", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.IssueSuperseding(context.Background(), userID, domain.PurposePasswordReset, time.Hour, "203.0.113.9")
	require.NoError(t, err)

	repo.AssertCalled(t, "InvalidateUnused", mock.Anything, userID, domain.PurposePasswordReset)
}

func TestEphemeralTokenService_Consume(t *testing.T) {
	repo := &mocks.EphemeralTokenRepository{}
	svc := NewEphemeralTokenService(repo)
	userID := uuid.New()

	repo.On("Consume", mock.Anything, "good-token", domain.PurposeEmailVerification, mock.AnythingOfType("time.Time")).
		Return(&domain.EphemeralToken{UserID: userID, IsUsed: true}, nil)

	got, err := svc.Consume(context.Background(), "good-token", domain.PurposeEmailVerification)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestEphemeralTokenService_ConsumeErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "not found", err: autherror.ErrTokenNotFound},
		{name: "already used", err: autherror.ErrTokenAlreadyUsed},
		{name: "expired", err: autherror.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.EphemeralTokenRepository{}
			svc := NewEphemeralTokenService(repo)

			repo.On("Consume", mock.Anything, "bad-token", domain.PurposePasswordReset, mock.AnythingOfType("time.Time")).
				Return(nil, tt.err)

			_, err := svc.Consume(context.Background(), "bad-token", domain.PurposePasswordReset)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
