package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

var _ domain.EphemeralTokenRepository = (*EphemeralTokenRepository)(nil)

type EphemeralTokenRepository struct {
	db DB
}

func NewEphemeralTokenRepository(db DB) *EphemeralTokenRepository {
	return &EphemeralTokenRepository{db: db}
}

func (r *EphemeralTokenRepository) Store(ctx context.Context, token *domain.EphemeralToken) error {
	query := `
		INSERT INTO ephemeral_tokens (id, user_id, token, purpose, expires_at,
			is_used, request_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		token.ID, token.UserID, token.Token, token.Purpose, token.ExpiresAt,
		token.IsUsed, token.RequestIP, token.CreatedAt,
	)
	if err != nil {
		return autherror.Infrastructure("store ephemeral token", err)
	}

	return nil
}

func (r *EphemeralTokenRepository) InvalidateUnused(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose) error {
	query := `
		UPDATE ephemeral_tokens SET is_used = TRUE
		WHERE user_id = $1 AND purpose = $2 AND is_used = FALSE`

	if _, err := r.db.Exec(ctx, query, userID, purpose); err != nil {
		return autherror.Infrastructure("invalidate ephemeral tokens", err)
	}

	return nil
}

// Consume flips is_used in one conditional UPDATE so double submission has
// exactly one winner. A zero-row update is classified afterwards: missing
// row, already used (takes precedence regardless of expiry), or expired.
func (r *EphemeralTokenRepository) Consume(ctx context.Context, token string, purpose domain.TokenPurpose, now time.Time) (*domain.EphemeralToken, error) {
	query := `
		UPDATE ephemeral_tokens SET is_used = TRUE
		WHERE token = $1 AND purpose = $2 AND is_used = FALSE AND expires_at > $3
		RETURNING id, user_id, token, purpose, expires_at, is_used, request_ip, created_at`

	var t domain.EphemeralToken
	err := r.db.QueryRow(ctx, query, token, purpose, now).Scan(
		&t.ID, &t.UserID, &t.Token, &t.Purpose, &t.ExpiresAt, &t.IsUsed,
		&t.RequestIP, &t.CreatedAt,
	)
	if err == nil {
		return &t, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, autherror.Infrastructure("consume ephemeral token", err)
	}

	var isUsed bool
	var expiresAt time.Time
	err = r.db.QueryRow(ctx,
		`SELECT is_used, expires_at FROM ephemeral_tokens WHERE token = $1 AND purpose = $2 LIMIT 1`,
		token, purpose,
	).Scan(&isUsed, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, autherror.ErrTokenNotFound
		}

		return nil, autherror.Infrastructure("classify ephemeral token", err)
	}

	if isUsed {
		return nil, autherror.ErrTokenAlreadyUsed
	}

	return nil, autherror.ErrTokenExpired
}
