package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(now *time.Time) TokenService {
	return NewTokenServiceWithClock(
		"access-secret", "refresh-secret",
		15*time.Minute, 7*24*time.Hour,
		func() time.Time { return *now },
	)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(&now)
	accountID := uuid.New()

	pair, err := svc.Issue(accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	gotAccess, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, accountID, gotAccess)

	gotRefresh, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, accountID, gotRefresh)
}

func TestTokenService_SecretsAreDistinct(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(&now)

	pair, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_AccessTokenExpires(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(&now)

	pair, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	// Still valid just before the 15 minute mark.
	now = now.Add(14 * time.Minute)
	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.NoError(t, err)

	// Expired once the TTL has elapsed.
	now = now.Add(2 * time.Minute)
	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The refresh token outlives the access token.
	_, err = svc.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestTokenService_RefreshTokenExpires(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(&now)

	pair, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	now = now.Add(7*24*time.Hour + time.Minute)
	_, err = svc.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(&now)

	_, err := svc.VerifyAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccess("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(&now)
	other := NewTokenServiceWithClock("other-access", "other-refresh",
		15*time.Minute, 7*24*time.Hour, func() time.Time { return now })

	pair, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
