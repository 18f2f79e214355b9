package services

import (
	"context"
	"errors"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenantService interface {
	Create(ctx context.Context, ownerID uuid.UUID, tenant *models.Tenant) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, ownerID uuid.UUID, tenant *models.Tenant) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter repositories.TenantFilter, limit, offset int) ([]*models.Tenant, int64, error)
}

type tenantService struct {
	tenantRepo   repositories.TenantRepository
	propertyRepo repositories.PropertyRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository, propertyRepo repositories.PropertyRepository) TenantService {
	return &tenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
	}
}

func validateTenant(tenant *models.Tenant) error {
	if err := common.ValidateRequiredString(tenant.FirstName, "firstName"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(tenant.LastName, "lastName"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(tenant.Email, "email"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(tenant.Phone, "phone"); err != nil {
		return err
	}
	if err := common.ValidateDateRange(tenant.LeaseStartDate, tenant.LeaseEndDate); err != nil {
		return err
	}
	if err := common.ValidateNonNegative(tenant.MonthlyRent, "monthlyRent"); err != nil {
		return err
	}
	if err := common.ValidateNonNegative(tenant.SecurityDeposit, "securityDeposit"); err != nil {
		return err
	}
	return common.ValidateTenantStatus(tenant.Status)
}

// Create verifies the referenced property belongs to the owner, then inserts
// the tenant and flips the property to occupied in one transaction.
func (s *tenantService) Create(ctx context.Context, ownerID uuid.UUID, tenant *models.Tenant) error {
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusActive
	}
	if err := validateTenant(tenant); err != nil {
		return validation(err)
	}

	if _, err := s.propertyRepo.GetByID(ctx, ownerID, tenant.PropertyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidProperty
		}
		return err
	}

	tenant.ID = uuid.New()
	tenant.OwnerID = ownerID
	return s.tenantRepo.CreateAndOccupy(ctx, tenant)
}

func (s *tenantService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, ownerID uuid.UUID, tenant *models.Tenant) error {
	if err := validateTenant(tenant); err != nil {
		return validation(err)
	}

	tenant.OwnerID = ownerID
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *tenantService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.tenantRepo.DeleteAndMaybeVacate(ctx, ownerID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return validation(errors.New("tenant still has leases or payments attached"))
		}
		return err
	}
	return nil
}

func (s *tenantService) List(ctx context.Context, ownerID uuid.UUID, filter repositories.TenantFilter, limit, offset int) ([]*models.Tenant, int64, error) {
	return s.tenantRepo.List(ctx, ownerID, filter, limit, offset)
}
