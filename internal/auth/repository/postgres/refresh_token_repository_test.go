package postgres_test

import (
	"context"
	"crypto/sha256"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	repo "github.com/KshitijChavan-Stack/authflow/internal/auth/repository/postgres"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

var refreshColumns = []string{
	"id", "user_id", "token_hash", "issued_at", "expires_at", "revoked",
	"replaced_by", "ip_address", "user_agent", "created_at",
}

func sampleRefreshToken() *domain.RefreshToken {
	now := time.Now()
	sum := sha256.Sum256([]byte("refresh-token-value"))

	return &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: sum[:],
		IssuedAt:  now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		IPAddress: "203.0.113.9",
		UserAgent: "test-agent",
		CreatedAt: now,
	}
}

func refreshArgs(t *domain.RefreshToken) []any {
	return []any{
		t.ID, t.UserID, t.TokenHash, t.IssuedAt, t.ExpiresAt, t.Revoked,
		t.ReplacedBy, t.IPAddress, t.UserAgent, t.CreatedAt,
	}
}

func TestRefreshTokenRepositoryStore(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)
	token := sampleRefreshToken()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(refreshArgs(token)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, r.Store(ctx, token))
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(refreshArgs(token)...).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Store(ctx, token)
		require.Error(t, err)
		assert.True(t, autherror.IsInfrastructure(err))
	})
}

func TestRefreshTokenRepositoryGetByHash(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)
	expected := sampleRefreshToken()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token_hash").
			WithArgs(expected.TokenHash).
			WillReturnRows(pgxmock.NewRows(refreshColumns).AddRow(
				expected.ID, expected.UserID, expected.TokenHash,
				expected.IssuedAt, expected.ExpiresAt, expected.Revoked,
				expected.ReplacedBy, expected.IPAddress, expected.UserAgent,
				expected.CreatedAt,
			))

		token, err := r.GetByHash(ctx, expected.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, expected.ID, token.ID)
		assert.True(t, token.Active(time.Now()))
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token_hash").
			WithArgs(expected.TokenHash).
			WillReturnError(pgx.ErrNoRows)

		token, err := r.GetByHash(ctx, expected.TokenHash)
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token_hash").
			WithArgs(expected.TokenHash).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByHash(ctx, expected.TokenHash)
		require.Error(t, err)
		assert.True(t, autherror.IsInfrastructure(err))
	})
}

func TestRefreshTokenRepositoryRotate(t *testing.T) {
	oldHash := sha256.Sum256([]byte("old-token"))
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		r := repo.NewRefreshTokenRepository(mock)
		successor := sampleRefreshToken()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE refresh_tokens").
			WithArgs(oldHash[:], successor.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(refreshArgs(successor)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		assert.NoError(t, r.Rotate(ctx, oldHash[:], successor))
	})

	t.Run("already rotated", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		r := repo.NewRefreshTokenRepository(mock)
		successor := sampleRefreshToken()

		// The conditional UPDATE matches no live record; no successor insert.
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE refresh_tokens").
			WithArgs(oldHash[:], successor.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err = r.Rotate(ctx, oldHash[:], successor)
		assert.ErrorIs(t, err, autherror.ErrInvalidOrRevoked)
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		r := repo.NewRefreshTokenRepository(mock)
		successor := sampleRefreshToken()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE refresh_tokens").
			WithArgs(oldHash[:], successor.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(refreshArgs(successor)...).
			WillReturnError(fmt.Errorf("db error"))
		mock.ExpectRollback()

		err = r.Rotate(ctx, oldHash[:], successor)
		require.Error(t, err)
		assert.True(t, autherror.IsInfrastructure(err))
	})

	t.Run("begin failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		r := repo.NewRefreshTokenRepository(mock)

		mock.ExpectBegin().WillReturnError(fmt.Errorf("db down"))

		err = r.Rotate(ctx, oldHash[:], sampleRefreshToken())
		require.Error(t, err)
		assert.True(t, autherror.IsInfrastructure(err))
	})
}

func TestRefreshTokenRepositoryRevoke(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)
	hash := sha256.Sum256([]byte("token"))

	mock.ExpectExec("UPDATE refresh_tokens SET revoked = TRUE WHERE token_hash").
		WithArgs(hash[:]).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, r.Revoke(context.Background(), hash[:]))
}

func TestRefreshTokenRepositoryRevokeAllByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)
	userID := uuid.New()

	mock.ExpectExec("UPDATE refresh_tokens SET revoked = TRUE WHERE user_id").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	assert.NoError(t, r.RevokeAllByUser(context.Background(), userID))
}
