package services

import (
	"context"
	"testing"
	"time"

	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMaintenanceService(repo *MockMaintenanceRepository) MaintenanceService {
	return NewMaintenanceServiceWithClock(repo, func() time.Time { return fixedNow })
}

func validMaintenance(status string) *models.MaintenanceRequest {
	return &models.MaintenanceRequest{
		PropertyID:  uuid.New(),
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips constantly",
		Category:    "plumbing",
		Priority:    "high",
		Status:      status,
	}
}

func TestMaintenanceService_CreateDefaults(t *testing.T) {
	repo := new(MockMaintenanceRepository)
	svc := newMaintenanceService(repo)

	ownerID := uuid.New()
	request := validMaintenance("")
	request.Priority = ""

	repo.On("Create", mock.Anything, request).Return(nil)

	err := svc.Create(context.Background(), ownerID, request)
	assert.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusOpen, request.Status)
	assert.Equal(t, "medium", request.Priority)
	assert.Nil(t, request.CompletedDate)
}

func TestMaintenanceService_ResolvedStampsCompletedDate(t *testing.T) {
	repo := new(MockMaintenanceRepository)
	svc := newMaintenanceService(repo)

	ownerID := uuid.New()
	request := validMaintenance(models.MaintenanceStatusResolved)
	request.ID = uuid.New()

	repo.On("Update", mock.Anything, request).Return(nil)

	err := svc.Update(context.Background(), ownerID, request)
	assert.NoError(t, err)
	if assert.NotNil(t, request.CompletedDate) {
		assert.Equal(t, fixedNow, *request.CompletedDate)
	}
}

func TestMaintenanceService_ExplicitCompletedDatePreserved(t *testing.T) {
	repo := new(MockMaintenanceRepository)
	svc := newMaintenanceService(repo)

	explicit := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	request := validMaintenance(models.MaintenanceStatusResolved)
	request.CompletedDate = &explicit

	repo.On("Update", mock.Anything, request).Return(nil)

	err := svc.Update(context.Background(), uuid.New(), request)
	assert.NoError(t, err)
	assert.Equal(t, explicit, *request.CompletedDate)
}

func TestMaintenanceService_CreateRejectsBadPriority(t *testing.T) {
	repo := new(MockMaintenanceRepository)
	svc := newMaintenanceService(repo)

	request := validMaintenance("")
	request.Priority = "critical"

	err := svc.Create(context.Background(), uuid.New(), request)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
