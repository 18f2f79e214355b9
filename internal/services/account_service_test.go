package services

import (
	"context"
	"testing"
	"time"

	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountService(repo *MockAccountRepository) AccountService {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewTokenServiceWithClock("access-secret", "refresh-secret",
		15*time.Minute, 7*24*time.Hour, func() time.Time { return now })
	return NewAccountService(repo, tokens)
}

func TestAccountService_Register(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newAccountService(repo)

	repo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Account")).Return(nil)

	account, pair, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleLandlord, account.Role)
	assert.NotEmpty(t, pair.AccessToken)

	// The stored hash verifies against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret123")))
}

func TestAccountService_RegisterDuplicate(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newAccountService(repo)

	repo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(true, nil)

	_, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "")
	assert.ErrorIs(t, err, ErrDuplicateAccount)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_RegisterRejectsUnknownRole(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newAccountService(repo)

	_, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "superuser")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAccountService_Login(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newAccountService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	account := &models.Account{ID: uuid.New(), Email: "alice@example.com", PasswordHash: string(hash)}

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)

	got, pair, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestAccountService_LoginWrongPassword(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newAccountService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	account := &models.Account{ID: uuid.New(), Email: "alice@example.com", PasswordHash: string(hash)}

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountService_LoginUnknownEmail(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newAccountService(repo)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, pgx.ErrNoRows)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountService_Refresh(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := newAccountService(repo)

	account := &models.Account{ID: uuid.New(), Role: models.RoleLandlord}
	repo.On("ExistsByUsernameOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Account")).Return(nil)
	repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(account, nil)

	_, pair, err := svc.Register(context.Background(), "bob", "bob@example.com", "secret123", "")
	require.NoError(t, err)

	_, refreshed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token must not work as a refresh token.
	_, _, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
