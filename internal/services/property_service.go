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

type PropertyService interface {
	Create(ctx context.Context, ownerID uuid.UUID, property *models.Property) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, ownerID uuid.UUID, property *models.Property) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter repositories.PropertyFilter, limit, offset int) ([]*models.Property, int64, error)
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
}

func NewPropertyService(propertyRepo repositories.PropertyRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo}
}

func validateProperty(property *models.Property) error {
	if err := common.ValidateRequiredString(property.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(property.Address.Street, "address.street"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(property.Address.City, "address.city"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(property.Address.State, "address.state"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(property.Address.ZipCode, "address.zipCode"); err != nil {
		return err
	}
	if err := common.ValidatePropertyType(property.Type); err != nil {
		return err
	}
	if err := common.ValidateNonNegative(property.MonthlyRent, "monthlyRent"); err != nil {
		return err
	}
	if property.Bedrooms < 0 || property.Bathrooms < 0 {
		return errors.New("bedrooms and bathrooms must not be negative")
	}
	return common.ValidatePropertyStatus(property.Status)
}

func (s *propertyService) Create(ctx context.Context, ownerID uuid.UUID, property *models.Property) error {
	if property.Status == "" {
		property.Status = models.PropertyStatusVacant
	}
	if err := validateProperty(property); err != nil {
		return validation(err)
	}

	property.ID = uuid.New()
	property.OwnerID = ownerID
	return s.propertyRepo.Create(ctx, property)
}

func (s *propertyService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Update(ctx context.Context, ownerID uuid.UUID, property *models.Property) error {
	if err := validateProperty(property); err != nil {
		return validation(err)
	}

	property.OwnerID = ownerID
	if err := s.propertyRepo.Update(ctx, property); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *propertyService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.propertyRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return validation(errors.New("property still has tenants, leases, payments or maintenance requests attached"))
		}
		return err
	}
	return nil
}

func (s *propertyService) List(ctx context.Context, ownerID uuid.UUID, filter repositories.PropertyFilter, limit, offset int) ([]*models.Property, int64, error) {
	return s.propertyRepo.List(ctx, ownerID, filter, limit, offset)
}
