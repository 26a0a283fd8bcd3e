package service

import (
	"context"
	"crypto/sha256"
	"time"

	"github.com/google/uuid"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	"github.com/KshitijChavan-Stack/authflow/internal/auth/dto"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
	"github.com/KshitijChavan-Stack/authflow/internal/logger"
	"github.com/KshitijChavan-Stack/authflow/internal/mailer"
	"github.com/KshitijChavan-Stack/authflow/internal/password"
	authconstant "github.com/KshitijChavan-Stack/authflow/pkg/constant"
)

// Response messages. ForgotPassword must return msgPasswordResetRequested
// verbatim whether or not the account exists.
const (
	msgRegistered             = "Registration successful. Please check your email to verify your account."
	msgEmailVerified          = "Email verified successfully. You can now login."
	msgVerificationResent     = "Verification email sent successfully"
	msgLoggedOut              = "Logged out successfully"
	msgPasswordResetRequested = "If an account exists with this email, you will receive a password reset link."
	msgPasswordReset          = "Password reset successfully. Please login with your new password."
)

// AuthService composes the credential guard, token issuer, token stores and
// revocation cache into the externally callable session operations.
type AuthService struct {
	users     domain.UserRepository
	refresh   domain.RefreshTokenRepository
	ephemeral *EphemeralTokenService
	guard     *CredentialGuard
	tokens    TokenGenerator
	cache     domain.RevocationCache
	mail      mailer.Sender
	hasher    *password.Hasher
	log       *logger.Logger

	verificationTTL time.Duration
	resetTTL        time.Duration
}

type AuthServiceDeps struct {
	Users           domain.UserRepository
	Refresh         domain.RefreshTokenRepository
	Ephemeral       *EphemeralTokenService
	Guard           *CredentialGuard
	Tokens          TokenGenerator
	Cache           domain.RevocationCache
	Mail            mailer.Sender
	Hasher          *password.Hasher
	Log             *logger.Logger
	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	return &AuthService{
		users:           deps.Users,
		refresh:         deps.Refresh,
		ephemeral:       deps.Ephemeral,
		guard:           deps.Guard,
		tokens:          deps.Tokens,
		cache:           deps.Cache,
		mail:            deps.Mail,
		hasher:          deps.Hasher,
		log:             deps.Log,
		verificationTTL: deps.VerificationTTL,
		resetTTL:        deps.ResetTTL,
	}
}

func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))

	return sum[:]
}

// Register creates the user and issues an email-verification token. Email
// delivery is best-effort; a delivery failure is logged, never returned.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	email := domain.NormalizeEmail(input.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         authconstant.DefaultUserRole,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.ephemeral.Issue(ctx, user.ID, domain.PurposeEmailVerification, s.verificationTTL, "")
	if err != nil {
		return nil, err
	}

	if err := s.mail.SendVerificationEmail(ctx, user.Email, user.FirstName, token); err != nil {
		s.log.Error("failed to send verification email", "user_id", user.ID, "error", err)
	}

	s.log.Info("new user registered", "user_id", user.ID, "email", user.Email)

	return &dto.RegisterOutput{
		User:    dto.NewUserOutput(user),
		Message: msgRegistered,
	}, nil
}

// VerifyEmail consumes a verification token and flips the verified flag.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*dto.MessageResponse, error) {
	userID, err := s.ephemeral.Consume(ctx, token, domain.PurposeEmailVerification)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetEmailVerified(ctx, userID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err == nil && user != nil {
		if err := s.mail.SendWelcomeEmail(ctx, user.Email, user.FirstName); err != nil {
			s.log.Error("failed to send welcome email", "user_id", userID, "error", err)
		}
	}

	s.log.Info("email verified", "user_id", userID)

	return &dto.MessageResponse{Message: msgEmailVerified}, nil
}

// ResendVerification invalidates prior unused verification tokens and sends
// a fresh one. Unlike registration, a delivery failure is the operation's
// failure here: the caller asked for exactly this email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (*dto.MessageResponse, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if user.IsEmailVerified {
		return nil, autherror.ErrEmailAlreadyVerified
	}

	token, err := s.ephemeral.IssueSuperseding(ctx, user.ID, domain.PurposeEmailVerification, s.verificationTTL, "")
	if err != nil {
		return nil, err
	}

	if err := s.mail.SendVerificationEmail(ctx, user.Email, user.FirstName, token); err != nil {
		s.log.Error("failed to resend verification email", "user_id", user.ID, "error", err)

		return nil, autherror.ErrEmailDeliveryFailed
	}

	return &dto.MessageResponse{Message: msgVerificationResent}, nil
}

// Login verifies credentials, mints a token pair and persists the refresh
// record that starts a new rotation chain.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.guard.Verify(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.Generate(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(pair.RefreshToken),
		IssuedAt:  now,
		ExpiresAt: pair.RefreshExpiresAt,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		CreatedAt: now,
	}

	if err := s.refresh.Store(ctx, record); err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Error("failed to update last login", "user_id", user.ID, "error", err)
	}

	user.LastLogin = &now

	s.log.Info("user logged in", "user_id", user.ID)

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.NewUserOutput(user),
	}, nil
}

// Refresh exchanges a refresh token for a new pair, rotating the chain.
// Presenting an already-rotated token fails only that call; the rest of the
// chain stays valid.
func (s *AuthService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	claims, err := s.tokens.Verify(input.RefreshToken, PurposeRefresh)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, autherror.ErrTokenMalformed
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, autherror.ErrInvalidOrRevoked
	}

	if !user.IsActive {
		return nil, autherror.ErrAccountDeactivated
	}

	pair, err := s.tokens.Generate(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	successor := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(pair.RefreshToken),
		IssuedAt:  now,
		ExpiresAt: pair.RefreshExpiresAt,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		CreatedAt: now,
	}

	if err := s.refresh.Rotate(ctx, hashToken(input.RefreshToken), successor); err != nil {
		return nil, err
	}

	s.log.Info("tokens refreshed", "user_id", user.ID)

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout revokes the refresh record and blacklists the access token for its
// remaining lifetime. A garbled access token is tolerated; logout still
// succeeds. Revocation only touches a record that is still active, so logout
// stays idempotent for unknown or already-revoked tokens.
func (s *AuthService) Logout(ctx context.Context, input dto.LogoutInput) (*dto.MessageResponse, error) {
	if input.RefreshToken != "" {
		hash := hashToken(input.RefreshToken)

		record, err := s.refresh.GetByHash(ctx, hash)
		if err != nil {
			return nil, err
		}

		if record != nil && record.Active(time.Now()) {
			if err := s.refresh.Revoke(ctx, hash); err != nil {
				return nil, err
			}
		}
	}

	if input.AccessToken != "" {
		claims, err := s.tokens.Verify(input.AccessToken, PurposeAccess)
		if err != nil {
			s.log.Warn("could not decode access token during logout", "error", err)
		} else if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			if err := s.cache.Blacklist(ctx, input.AccessToken, remaining); err != nil {
				s.log.Error("failed to blacklist access token", "error", err)
			}
		}
	}

	s.log.Info("user logged out")

	return &dto.MessageResponse{Message: msgLoggedOut}, nil
}

// ForgotPassword issues a reset token when the account exists. Both branches
// return the identical message and pay a comparable hashing cost, so the
// response leaks neither existence nor timing.
func (s *AuthService) ForgotPassword(ctx context.Context, input dto.ForgotPasswordInput) (*dto.MessageResponse, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}

	if user == nil {
		s.hasher.CompareDummy(input.Email)

		return &dto.MessageResponse{Message: msgPasswordResetRequested}, nil
	}

	token, err := s.ephemeral.IssueSuperseding(ctx, user.ID, domain.PurposePasswordReset, s.resetTTL, input.IPAddress)
	if err != nil {
		return nil, err
	}

	if err := s.mail.SendPasswordResetEmail(ctx, user.Email, user.FirstName, token); err != nil {
		s.log.Error("failed to send password reset email", "user_id", user.ID, "error", err)
	}

	s.log.Info("password reset requested", "user_id", user.ID)

	return &dto.MessageResponse{Message: msgPasswordResetRequested}, nil
}

// ResetPassword consumes a reset token, installs the new password hash and
// revokes every outstanding refresh record for the user.
func (s *AuthService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) (*dto.MessageResponse, error) {
	userID, err := s.ephemeral.Consume(ctx, input.Token, domain.PurposePasswordReset)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, hashed); err != nil {
		return nil, err
	}

	if err := s.refresh.RevokeAllByUser(ctx, userID); err != nil {
		return nil, err
	}

	s.log.Info("password reset completed", "user_id", userID)

	return &dto.MessageResponse{Message: msgPasswordReset}, nil
}

// CurrentUser loads the user summary for an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserOutput, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return dto.NewUserOutput(user), nil
}
