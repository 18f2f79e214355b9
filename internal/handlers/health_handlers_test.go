package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentease/internal/common"
	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPaymentStats(ctx context.Context, ownerID uuid.UUID) (*models.PaymentStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentStats), args.Error(1)
}

func (m *MockCacheService) SetPaymentStats(ctx context.Context, ownerID uuid.UUID, stats *models.PaymentStats, ttl time.Duration) error {
	args := m.Called(ctx, ownerID, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidatePaymentStats(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockStorageService) Download(ctx context.Context, bucketName, objectName string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, bucketName, objectName)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

func (m *MockStorageService) Delete(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockStorageService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHealth_AllServicesUp(t *testing.T) {
	e := echo.New()
	db := new(MockPinger)
	cache := new(MockCacheService)
	storage := new(MockStorageService)
	h := NewHealthHandlers(db, cache, storage)

	db.On("Ping", mock.Anything).Return(nil)
	cache.On("Ping", mock.Anything).Return(nil)
	storage.On("Ping", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var env common.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

func TestHealth_DegradedHidesBackendDetails(t *testing.T) {
	e := echo.New()
	db := new(MockPinger)
	cache := new(MockCacheService)
	storage := new(MockStorageService)
	h := NewHealthHandlers(db, cache, storage)

	db.On("Ping", mock.Anything).
		Return(errors.New(`failed to connect to host=db.internal user=rentease database=rentease`))
	cache.On("Ping", mock.Anything).Return(nil)
	storage.On("Ping", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var env common.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)

	checks := env.Data.(map[string]interface{})
	assert.Equal(t, "unavailable", checks["database"])
	assert.Equal(t, "ok", checks["cache"])
	assert.Equal(t, "ok", checks["storage"])
	assert.NotContains(t, rec.Body.String(), "db.internal")
}
