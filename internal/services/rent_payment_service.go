package services

import (
	"context"
	"errors"
	"log"
	"time"

	"rentease/internal/caching"
	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const statsCacheTTL = 5 * time.Minute

type RentPaymentService interface {
	Create(ctx context.Context, ownerID uuid.UUID, payment *models.RentPayment) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.RentPayment, error)
	Update(ctx context.Context, ownerID uuid.UUID, payment *models.RentPayment) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter repositories.PaymentFilter, limit, offset int) ([]*models.RentPayment, int64, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (*models.PaymentStats, error)
	// SweepOverdue marks pending payments past due as late. Returns the number
	// of owners whose payments changed.
	SweepOverdue(ctx context.Context) (int, error)
}

type rentPaymentService struct {
	paymentRepo repositories.RentPaymentRepository
	cache       caching.CacheService
	now         func() time.Time
}

func NewRentPaymentService(paymentRepo repositories.RentPaymentRepository, cache caching.CacheService) RentPaymentService {
	return NewRentPaymentServiceWithClock(paymentRepo, cache, time.Now)
}

// NewRentPaymentServiceWithClock pins the clock used for paid-date stamping
// and the overdue sweep.
func NewRentPaymentServiceWithClock(paymentRepo repositories.RentPaymentRepository, cache caching.CacheService, now func() time.Time) RentPaymentService {
	return &rentPaymentService{
		paymentRepo: paymentRepo,
		cache:       cache,
		now:         now,
	}
}

func validatePayment(payment *models.RentPayment) error {
	if payment.TenantID == uuid.Nil {
		return errors.New("tenantId is required")
	}
	if payment.PropertyID == uuid.Nil {
		return errors.New("propertyId is required")
	}
	if err := common.ValidateNonNegative(payment.Amount, "amount"); err != nil {
		return err
	}
	if payment.DueDate.IsZero() {
		return errors.New("dueDate is required")
	}
	if err := common.ValidatePaymentStatus(payment.Status); err != nil {
		return err
	}
	return common.ValidatePaymentMethod(payment.PaymentMethod)
}

// stampPaidDate fills paidDate when a payment is paid and the client did not
// supply one. An explicit paidDate is preserved as given.
func (s *rentPaymentService) stampPaidDate(payment *models.RentPayment) {
	if payment.Status == models.PaymentStatusPaid && payment.PaidDate == nil {
		now := s.now()
		payment.PaidDate = &now
	}
}

func (s *rentPaymentService) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if err := s.cache.InvalidatePaymentStats(ctx, ownerID); err != nil {
		log.Printf("failed to invalidate payment stats for %s: %v", ownerID, err)
	}
}

func (s *rentPaymentService) Create(ctx context.Context, ownerID uuid.UUID, payment *models.RentPayment) error {
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = "online"
	}
	if err := validatePayment(payment); err != nil {
		return validation(err)
	}
	s.stampPaidDate(payment)

	payment.ID = uuid.New()
	payment.OwnerID = ownerID
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return err
	}
	s.invalidateStats(ctx, ownerID)
	return nil
}

func (s *rentPaymentService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.RentPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *rentPaymentService) Update(ctx context.Context, ownerID uuid.UUID, payment *models.RentPayment) error {
	if err := validatePayment(payment); err != nil {
		return validation(err)
	}
	s.stampPaidDate(payment)

	payment.OwnerID = ownerID
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateStats(ctx, ownerID)
	return nil
}

func (s *rentPaymentService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.paymentRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateStats(ctx, ownerID)
	return nil
}

func (s *rentPaymentService) List(ctx context.Context, ownerID uuid.UUID, filter repositories.PaymentFilter, limit, offset int) ([]*models.RentPayment, int64, error) {
	return s.paymentRepo.List(ctx, ownerID, filter, limit, offset)
}

func (s *rentPaymentService) Stats(ctx context.Context, ownerID uuid.UUID) (*models.PaymentStats, error) {
	if cached, err := s.cache.GetPaymentStats(ctx, ownerID); err == nil && cached != nil {
		return cached, nil
	}

	stats, err := s.paymentRepo.Stats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPaymentStats(ctx, ownerID, stats, statsCacheTTL); err != nil {
		log.Printf("failed to cache payment stats for %s: %v", ownerID, err)
	}
	return stats, nil
}

func (s *rentPaymentService) SweepOverdue(ctx context.Context) (int, error) {
	owners, err := s.paymentRepo.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	for _, ownerID := range owners {
		s.invalidateStats(ctx, ownerID)
	}
	return len(owners), nil
}
