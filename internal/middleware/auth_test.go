package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentease/internal/common"
	"rentease/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func newJWTContext(t *testing.T, sub string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: sub})
	c.Set("user", token)
	return c
}

func TestResolveAccount_SetsIdentity(t *testing.T) {
	repo := new(MockAccountRepository)
	accountID := uuid.New()
	repo.On("GetByID", mock.Anything, accountID).
		Return(&models.Account{ID: accountID, Role: models.RoleLandlord}, nil)

	c := newJWTContext(t, accountID.String())

	var gotID uuid.UUID
	var gotRole string
	next := func(c echo.Context) error {
		gotID, _ = common.GetAccountIDFromContext(c.Request().Context())
		gotRole, _ = common.GetAccountRoleFromContext(c.Request().Context())
		return nil
	}

	err := ResolveAccount(repo)(next)(c)
	assert.NoError(t, err)
	assert.Equal(t, accountID, gotID)
	assert.Equal(t, models.RoleLandlord, gotRole)
}

func TestResolveAccount_DeletedAccountRejected(t *testing.T) {
	repo := new(MockAccountRepository)
	accountID := uuid.New()
	repo.On("GetByID", mock.Anything, accountID).Return(nil, pgx.ErrNoRows)

	c := newJWTContext(t, accountID.String())
	err := ResolveAccount(repo)(func(c echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	}
}

func TestResolveAccount_BadSubject(t *testing.T) {
	repo := new(MockAccountRepository)
	c := newJWTContext(t, "not-a-uuid")

	err := ResolveAccount(repo)(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	e := echo.New()
	makeContext := func(role string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if role != "" {
			ctx := context.WithValue(req.Context(), common.AccountRoleKey, role)
			req = req.WithContext(ctx)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireRoles(models.RoleLandlord, models.RoleAdmin)

	assert.NoError(t, mw(next)(makeContext(models.RoleLandlord)))
	assert.NoError(t, mw(next)(makeContext(models.RoleAdmin)))

	err := mw(next)(makeContext("viewer"))
	he, ok := err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusForbidden, he.Code)
	}

	err = mw(next)(makeContext(""))
	he, ok = err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	}
}
