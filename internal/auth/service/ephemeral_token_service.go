package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
)

// ephemeralTokenBytes gives 256 bits of entropy per token.
const ephemeralTokenBytes = 32

// EphemeralTokenService is the ledger of single-use verification and reset
// tokens.
type EphemeralTokenService struct {
	repo domain.EphemeralTokenRepository
}

func NewEphemeralTokenService(repo domain.EphemeralTokenRepository) *EphemeralTokenService {
	return &EphemeralTokenService{repo: repo}
}

func generateTokenValue() (string, error) {
	buf := make([]byte, ephemeralTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}

// Issue stores a fresh unused token and returns its value. Prior unused
// tokens stay valid; use IssueSuperseding when an old link must die.
func (s *EphemeralTokenService) Issue(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose, ttl time.Duration, requestIP string) (string, error) {
	value, err := generateTokenValue()
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := &domain.EphemeralToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     value,
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		IsUsed:    false,
		RequestIP: requestIP,
		CreatedAt: now,
	}

	if err := s.repo.Store(ctx, token); err != nil {
		return "", err
	}

	return value, nil
}

// IssueSuperseding invalidates every prior unused token of the purpose
// before issuing, so a previously leaked link cannot stay valid.
func (s *EphemeralTokenService) IssueSuperseding(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose, ttl time.Duration, requestIP string) (string, error) {
	if err := s.repo.InvalidateUnused(ctx, userID, purpose); err != nil {
		return "", err
	}

	return s.Issue(ctx, userID, purpose, ttl, requestIP)
}

// Consume marks the token used and returns the owning user id. The used
// flag flips exactly once; see EphemeralTokenRepository.Consume for the
// error taxonomy.
func (s *EphemeralTokenService) Consume(ctx context.Context, tokenValue string, purpose domain.TokenPurpose) (uuid.UUID, error) {
	token, err := s.repo.Consume(ctx, tokenValue, purpose, time.Now())
	if err != nil {
		return uuid.Nil, err
	}

	return token.UserID, nil
}
