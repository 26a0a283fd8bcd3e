package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

var _ domain.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db DB
}

func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Store(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, issued_at, expires_at,
			revoked, replaced_by, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.IssuedAt, token.ExpiresAt,
		token.Revoked, token.ReplacedBy, token.IPAddress, token.UserAgent,
		token.CreatedAt,
	)
	if err != nil {
		return autherror.Infrastructure("store refresh token", err)
	}

	return nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, issued_at, expires_at, revoked, replaced_by,
			ip_address, user_agent, created_at
		FROM refresh_tokens WHERE token_hash = $1 LIMIT 1`

	var t domain.RefreshToken
	err := r.db.QueryRow(ctx, query, hash).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.IssuedAt, &t.ExpiresAt, &t.Revoked,
		&t.ReplacedBy, &t.IPAddress, &t.UserAgent, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, autherror.Infrastructure("get refresh token", err)
	}

	return &t, nil
}

// Rotate is the atomic test-and-set of the rotation chain. The conditional
// UPDATE only matches a live record, so of two concurrent callers presenting
// the same token exactly one revokes it and inserts the successor; the other
// matches zero rows and gets ErrInvalidOrRevoked.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldHash []byte, successor *domain.RefreshToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return autherror.Infrastructure("begin rotate", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = TRUE, replaced_by = $2
		WHERE token_hash = $1 AND revoked = FALSE AND expires_at > now()`,
		oldHash, successor.ID,
	)
	if err != nil {
		return autherror.Infrastructure("revoke rotated token", err)
	}

	if tag.RowsAffected() == 0 {
		return autherror.ErrInvalidOrRevoked
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, issued_at, expires_at,
			revoked, replaced_by, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		successor.ID, successor.UserID, successor.TokenHash, successor.IssuedAt,
		successor.ExpiresAt, successor.Revoked, successor.ReplacedBy,
		successor.IPAddress, successor.UserAgent, successor.CreatedAt,
	)
	if err != nil {
		return autherror.Infrastructure("store rotated token", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return autherror.Infrastructure("commit rotate", err)
	}

	return nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, hash []byte) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE token_hash = $1 AND revoked = FALSE`

	if _, err := r.db.Exec(ctx, query, hash); err != nil {
		return autherror.Infrastructure("revoke refresh token", err)
	}

	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return autherror.Infrastructure("revoke refresh tokens by user", err)
	}

	return nil
}
