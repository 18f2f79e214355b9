package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, username, email, password, role string) (*models.Account, *models.TokenPair, error) {
	args := m.Called(ctx, username, email, password, role)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Account), args.Get(1).(*models.TokenPair), args.Error(2)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*models.Account, *models.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Account), args.Get(1).(*models.TokenPair), args.Error(2)
}

func (m *MockAccountService) Refresh(ctx context.Context, refreshToken string) (*models.Account, *models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Account), args.Get(1).(*models.TokenPair), args.Error(2)
}

func (m *MockAccountService) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func newAuthContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin_BadCredentialsReturns400(t *testing.T) {
	e := echo.New()
	svc := new(MockAccountService)
	h := NewAuthHandlers(svc)

	svc.On("Login", mock.Anything, "jordan@example.com", "wrong").
		Return(nil, nil, services.ErrInvalidCredentials)

	c, _ := newAuthContext(e, `{"email":"jordan@example.com","password":"wrong"}`)
	err := h.Login(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Invalid email or password", he.Message)
}

func TestLogin_Success(t *testing.T) {
	e := echo.New()
	svc := new(MockAccountService)
	h := NewAuthHandlers(svc)

	account := &models.Account{ID: uuid.New(), Username: "jordan", Email: "jordan@example.com", Role: models.RoleLandlord}
	tokens := &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
	svc.On("Login", mock.Anything, "jordan@example.com", "secret123").
		Return(account, tokens, nil)

	c, rec := newAuthContext(e, `{"email":"jordan@example.com","password":"secret123"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_DuplicateReturns400(t *testing.T) {
	e := echo.New()
	svc := new(MockAccountService)
	h := NewAuthHandlers(svc)

	svc.On("Register", mock.Anything, "jordan", "jordan@example.com", "secret123", "").
		Return(nil, nil, services.ErrDuplicateAccount)

	c, _ := newAuthContext(e, `{"username":"jordan","email":"jordan@example.com","password":"secret123"}`)
	err := h.Register(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRefresh_InvalidTokenReturns401(t *testing.T) {
	e := echo.New()
	svc := new(MockAccountService)
	h := NewAuthHandlers(svc)

	svc.On("Refresh", mock.Anything, "stale").
		Return(nil, nil, services.ErrInvalidToken)

	c, _ := newAuthContext(e, `{"refreshToken":"stale"}`)
	err := h.Refresh(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
