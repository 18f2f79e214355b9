package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DocumentUpload describes an uploaded lease document already validated for
// size and content type at the HTTP layer.
type DocumentUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Ext         string
}

type LeaseService interface {
	Create(ctx context.Context, ownerID uuid.UUID, lease *models.LeaseAgreement, doc *DocumentUpload) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.LeaseAgreement, error)
	Update(ctx context.Context, ownerID uuid.UUID, lease *models.LeaseAgreement, doc *DocumentUpload) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter repositories.LeaseFilter, limit, offset int) ([]*models.LeaseAgreement, int64, error)
	Download(ctx context.Context, ownerID, id uuid.UUID) (io.ReadCloser, string, error)
}

type leaseService struct {
	leaseRepo repositories.LeaseRepository
	storage   StorageService
	bucket    string
}

func NewLeaseService(leaseRepo repositories.LeaseRepository, storage StorageService, bucket string) LeaseService {
	return &leaseService{
		leaseRepo: leaseRepo,
		storage:   storage,
		bucket:    bucket,
	}
}

func validateLease(lease *models.LeaseAgreement) error {
	if lease.TenantID == uuid.Nil {
		return errors.New("tenantId is required")
	}
	if lease.PropertyID == uuid.Nil {
		return errors.New("propertyId is required")
	}
	if err := common.ValidateDateRange(lease.StartDate, lease.EndDate); err != nil {
		return err
	}
	if err := common.ValidateNonNegative(lease.MonthlyRent, "monthlyRent"); err != nil {
		return err
	}
	if err := common.ValidateNonNegative(lease.SecurityDeposit, "securityDeposit"); err != nil {
		return err
	}
	return common.ValidateLeaseStatus(lease.Status)
}

func (s *leaseService) Create(ctx context.Context, ownerID uuid.UUID, lease *models.LeaseAgreement, doc *DocumentUpload) error {
	if lease.Status == "" {
		lease.Status = models.LeaseStatusActive
	}
	if err := validateLease(lease); err != nil {
		return validation(err)
	}

	lease.ID = uuid.New()
	lease.OwnerID = ownerID

	if doc != nil {
		objectName := fmt.Sprintf("lease-%s%s", lease.ID.String(), doc.Ext)
		if err := s.storage.Upload(ctx, s.bucket, objectName, doc.ContentType, doc.Reader, doc.Size); err != nil {
			return fmt.Errorf("failed to store lease document: %w", err)
		}
		lease.DocumentPath = &objectName
	}

	return s.leaseRepo.Create(ctx, lease)
}

func (s *leaseService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.LeaseAgreement, error) {
	lease, err := s.leaseRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lease, nil
}

func (s *leaseService) Update(ctx context.Context, ownerID uuid.UUID, lease *models.LeaseAgreement, doc *DocumentUpload) error {
	if err := validateLease(lease); err != nil {
		return validation(err)
	}

	lease.OwnerID = ownerID

	if doc != nil {
		previous := lease.DocumentPath
		objectName := fmt.Sprintf("lease-%s-%s%s", lease.ID.String(), uuid.NewString()[:8], doc.Ext)
		if err := s.storage.Upload(ctx, s.bucket, objectName, doc.ContentType, doc.Reader, doc.Size); err != nil {
			return fmt.Errorf("failed to store lease document: %w", err)
		}
		lease.DocumentPath = &objectName

		if previous != nil {
			if err := s.storage.Delete(ctx, s.bucket, *previous); err != nil {
				log.Printf("failed to remove replaced lease document %s: %v", *previous, err)
			}
		}
	}

	if err := s.leaseRepo.Update(ctx, lease); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes the lease row and its stored document. A missing document
// object is tolerated.
func (s *leaseService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	lease, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.leaseRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if lease.DocumentPath != nil {
		if err := s.storage.Delete(ctx, s.bucket, *lease.DocumentPath); err != nil {
			log.Printf("failed to remove lease document %s: %v", *lease.DocumentPath, err)
		}
	}
	return nil
}

func (s *leaseService) List(ctx context.Context, ownerID uuid.UUID, filter repositories.LeaseFilter, limit, offset int) ([]*models.LeaseAgreement, int64, error) {
	return s.leaseRepo.List(ctx, ownerID, filter, limit, offset)
}

func (s *leaseService) Download(ctx context.Context, ownerID, id uuid.UUID) (io.ReadCloser, string, error) {
	lease, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, "", err
	}
	if lease.DocumentPath == nil {
		return nil, "", ErrNoDocument
	}
	return s.storage.Download(ctx, s.bucket, *lease.DocumentPath)
}
