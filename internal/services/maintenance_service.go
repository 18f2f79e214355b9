package services

import (
	"context"
	"errors"
	"time"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MaintenanceService interface {
	Create(ctx context.Context, ownerID uuid.UUID, request *models.MaintenanceRequest) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.MaintenanceRequest, error)
	Update(ctx context.Context, ownerID uuid.UUID, request *models.MaintenanceRequest) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter repositories.MaintenanceFilter, limit, offset int) ([]*models.MaintenanceRequest, int64, error)
}

type maintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepository
	now             func() time.Time
}

func NewMaintenanceService(maintenanceRepo repositories.MaintenanceRepository) MaintenanceService {
	return NewMaintenanceServiceWithClock(maintenanceRepo, time.Now)
}

// NewMaintenanceServiceWithClock pins the clock used for completed-date
// stamping.
func NewMaintenanceServiceWithClock(maintenanceRepo repositories.MaintenanceRepository, now func() time.Time) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		now:             now,
	}
}

func validateMaintenance(request *models.MaintenanceRequest) error {
	if request.PropertyID == uuid.Nil {
		return errors.New("propertyId is required")
	}
	if err := common.ValidateRequiredString(request.Title, "title"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(request.Description, "description"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(request.Category, "category"); err != nil {
		return err
	}
	if err := common.ValidateMaintenancePriority(request.Priority); err != nil {
		return err
	}
	return common.ValidateMaintenanceStatus(request.Status)
}

// stampCompletedDate fills completedDate when a request is resolved and the
// client did not supply one.
func (s *maintenanceService) stampCompletedDate(request *models.MaintenanceRequest) {
	if request.Status == models.MaintenanceStatusResolved && request.CompletedDate == nil {
		now := s.now()
		request.CompletedDate = &now
	}
}

func (s *maintenanceService) Create(ctx context.Context, ownerID uuid.UUID, request *models.MaintenanceRequest) error {
	if request.Priority == "" {
		request.Priority = "medium"
	}
	if request.Status == "" {
		request.Status = models.MaintenanceStatusOpen
	}
	if err := validateMaintenance(request); err != nil {
		return validation(err)
	}
	s.stampCompletedDate(request)

	request.ID = uuid.New()
	request.OwnerID = ownerID
	return s.maintenanceRepo.Create(ctx, request)
}

func (s *maintenanceService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.MaintenanceRequest, error) {
	request, err := s.maintenanceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *maintenanceService) Update(ctx context.Context, ownerID uuid.UUID, request *models.MaintenanceRequest) error {
	if err := validateMaintenance(request); err != nil {
		return validation(err)
	}
	s.stampCompletedDate(request)

	request.OwnerID = ownerID
	if err := s.maintenanceRepo.Update(ctx, request); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *maintenanceService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.maintenanceRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *maintenanceService) List(ctx context.Context, ownerID uuid.UUID, filter repositories.MaintenanceFilter, limit, offset int) ([]*models.MaintenanceRequest, int64, error) {
	return s.maintenanceRepo.List(ctx, ownerID, filter, limit, offset)
}
