package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

// Token purposes carried in the purpose claim. Verification rejects a token
// presented for the wrong purpose even when its signature checks out.
const (
	PurposeAccess  = "access"
	PurposeRefresh = "refresh"
)

// TokenGenerator mints and verifies signed access/refresh token pairs.
type TokenGenerator interface {
	Generate(userID, email, role string) (*TokenPair, error)
	Verify(token, purpose string) (*JWTCustomClaims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

// TokenPair is one minted access/refresh pair with its expiries.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenService signs both token kinds with HS256. Access and refresh use
// separate secrets so a leaked refresh secret cannot forge access tokens.
type TokenService struct {
	accessSecret  string
	refreshSecret string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

var _ TokenGenerator = (*TokenService)(nil)

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
}

func NewTokenService(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (ts *TokenService) secretFor(purpose string) []byte {
	if purpose == PurposeRefresh {
		return []byte(ts.refreshSecret)
	}

	return []byte(ts.accessSecret)
}

// Generate mints the pair. The access token carries identity and role; the
// refresh token carries only the user id.
func (ts *TokenService) Generate(userID, email, role string) (*TokenPair, error) {
	now := time.Now()
	accessExp := now.Add(ts.accessExpiry)
	refreshExp := now.Add(ts.refreshExpiry)

	accessClaims := JWTCustomClaims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: PurposeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(accessExp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshClaims := JWTCustomClaims{
		UserID:  userID,
		Purpose: PurposeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(ts.accessSecret))
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(ts.refreshSecret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Verify parses tokenString against the secret for the expected purpose.
// Expired tokens surface as ErrTokenExpired so callers can tell a UX-grade
// failure from a forged or garbled token (ErrTokenMalformed) and from a
// valid token of the wrong kind (ErrWrongPurpose).
func (ts *TokenService) Verify(tokenString, purpose string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherror.ErrTokenMalformed
		}

		return ts.secretFor(purpose), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}

		return nil, autherror.ErrTokenMalformed
	}

	if !token.Valid {
		return nil, autherror.ErrTokenMalformed
	}

	if claims.Purpose != purpose {
		return nil, autherror.ErrWrongPurpose
	}

	return claims, nil
}

func (ts *TokenService) AccessTokenTTL() time.Duration {
	return ts.accessExpiry
}

func (ts *TokenService) RefreshTokenTTL() time.Duration {
	return ts.refreshExpiry
}
