package services

import (
	"time"

	"rentease/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and verifies the access/refresh token pair. Access and
// refresh tokens are signed with distinct secrets; callers pick the secret by
// calling the matching Verify method.
type TokenService interface {
	Issue(accountID uuid.UUID) (*models.TokenPair, error)
	VerifyAccess(token string) (uuid.UUID, error)
	VerifyRefresh(token string) (uuid.UUID, error)
}

type tokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenService creates a token service with the wall clock.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) TokenService {
	return NewTokenServiceWithClock(accessSecret, refreshSecret, accessTTL, refreshTTL, time.Now)
}

// NewTokenServiceWithClock pins the clock. Expiry boundary tests use it.
func NewTokenServiceWithClock(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, now func() time.Time) TokenService {
	return &tokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           now,
	}
}

func (s *tokenService) Issue(accountID uuid.UUID) (*models.TokenPair, error) {
	accessToken, err := s.sign(accountID, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(accountID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *tokenService) VerifyAccess(token string) (uuid.UUID, error) {
	return s.verify(token, s.accessSecret)
}

func (s *tokenService) VerifyRefresh(token string) (uuid.UUID, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *tokenService) sign(accountID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    "rentease-auth",
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *tokenService) verify(token string, secret []byte) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return accountID, nil
}
