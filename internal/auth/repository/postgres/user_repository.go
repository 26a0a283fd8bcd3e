package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

var _ domain.UserRepository = (*UserRepository)(nil)

// uniqueViolation is the postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, role,
	is_active, is_email_verified, failed_login_count, locked_until, last_login,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&u.IsActive, &u.IsEmailVerified, &u.FailedLoginCount, &u.LockedUntil,
		&u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, autherror.Infrastructure("scan user", err)
	}

	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`

	return scanUser(r.db.QueryRow(ctx, query, domain.NormalizeEmail(email)))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`

	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role,
			is_active, is_email_verified, failed_login_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.IsActive, user.IsEmailVerified, user.FailedLoginCount,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		// A concurrent registration can slip past the service's existence
		// check; the unique index on email is the authority.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return autherror.ErrEmailAlreadyInUse
		}

		return autherror.Infrastructure("create user", err)
	}

	return nil
}

// RecordFailedLogin applies the lockout counter transition in a single
// conditional UPDATE so concurrent failed attempts never lose increments.
// An elapsed lock restarts the count at 1; otherwise the count increments
// and the lock engages when it reaches maxAttempts.
func (r *UserRepository) RecordFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int, lockUntil time.Time) error {
	query := `
		UPDATE users SET
			failed_login_count = CASE
				WHEN locked_until IS NOT NULL AND locked_until < now() THEN 1
				ELSE failed_login_count + 1
			END,
			locked_until = CASE
				WHEN locked_until IS NOT NULL AND locked_until < now() THEN NULL
				WHEN locked_until IS NULL AND failed_login_count + 1 >= $2 THEN $3
				ELSE locked_until
			END,
			updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, maxAttempts, lockUntil); err != nil {
		return autherror.Infrastructure("record failed login", err)
	}

	return nil
}

func (r *UserRepository) ResetLoginAttempts(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users SET failed_login_count = 0, locked_until = NULL, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return autherror.Infrastructure("reset login attempts", err)
	}

	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login = $2, updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, at); err != nil {
		return autherror.Infrastructure("update last login", err)
	}

	return nil
}

func (r *UserRepository) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_email_verified = TRUE, updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return autherror.Infrastructure("set email verified", err)
	}

	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, hash); err != nil {
		return autherror.Infrastructure("update password hash", err)
	}

	return nil
}
