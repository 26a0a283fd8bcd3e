package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

func newTestTokenService() *TokenService {
	return NewTokenService("access-secret-key", "refresh-secret-key", 15*time.Minute, 7*24*time.Hour)
}

func TestTokenService_GenerateAndVerify(t *testing.T) {
	ts := newTestTokenService()

	pair, err := ts.Generate("user-123", "test@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	accessClaims, err := ts.Verify(pair.AccessToken, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-123", accessClaims.UserID)
	assert.Equal(t, "test@example.com", accessClaims.Email)
	assert.Equal(t, "user", accessClaims.Role)
	assert.Equal(t, PurposeAccess, accessClaims.Purpose)

	refreshClaims, err := ts.Verify(pair.RefreshToken, PurposeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-123", refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Email)
	assert.Equal(t, PurposeRefresh, refreshClaims.Purpose)
}

func TestTokenService_Expiries(t *testing.T) {
	ts := newTestTokenService()

	pair, err := ts.Generate("user-123", "test@example.com", "user")
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(15*time.Minute), pair.AccessExpiresAt, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), pair.RefreshExpiresAt, 5*time.Second)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	ts := NewTokenService("access-secret-key", "refresh-secret-key", -time.Minute, -time.Minute)

	pair, err := ts.Generate("user-123", "test@example.com", "user")
	require.NoError(t, err)

	_, err = ts.Verify(pair.AccessToken, PurposeAccess)
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)

	_, err = ts.Verify(pair.RefreshToken, PurposeRefresh)
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	ts := newTestTokenService()

	_, err := ts.Verify("not.a.token", PurposeAccess)
	assert.ErrorIs(t, err, autherror.ErrTokenMalformed)

	_, err = ts.Verify("", PurposeAccess)
	assert.ErrorIs(t, err, autherror.ErrTokenMalformed)
}

func TestTokenService_SecretsAreIsolated(t *testing.T) {
	ts := newTestTokenService()

	pair, err := ts.Generate("user-123", "test@example.com", "user")
	require.NoError(t, err)

	// A refresh token presented as an access token fails signature
	// verification because the purposes use different secrets.
	_, err = ts.Verify(pair.RefreshToken, PurposeAccess)
	assert.ErrorIs(t, err, autherror.ErrTokenMalformed)

	_, err = ts.Verify(pair.AccessToken, PurposeRefresh)
	assert.ErrorIs(t, err, autherror.ErrTokenMalformed)

	other := NewTokenService("different-access-secret", "different-refresh-secret", time.Minute, time.Minute)
	_, err = other.Verify(pair.AccessToken, PurposeAccess)
	assert.ErrorIs(t, err, autherror.ErrTokenMalformed)
}

func TestTokenService_WrongPurposeClaim(t *testing.T) {
	// With a shared secret the signature checks out and the purpose claim
	// is the only guard left; it must still reject.
	ts := NewTokenService("shared-secret", "shared-secret", time.Minute, time.Minute)

	pair, err := ts.Generate("user-123", "test@example.com", "user")
	require.NoError(t, err)

	_, err = ts.Verify(pair.RefreshToken, PurposeAccess)
	assert.ErrorIs(t, err, autherror.ErrWrongPurpose)
}

func TestTokenService_TTLAccessors(t *testing.T) {
	ts := newTestTokenService()

	assert.Equal(t, 15*time.Minute, ts.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, ts.RefreshTokenTTL())
}
