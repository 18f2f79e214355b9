package jobs

import (
	"context"
	"log"
	"time"

	"rentease/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the periodic maintenance tasks the API depends on.
type Scheduler struct {
	scheduler      gocron.Scheduler
	paymentService services.RentPaymentService
}

func NewScheduler(paymentService services.RentPaymentService) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:      scheduler,
		paymentService: paymentService,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	// Overdue sweep runs hourly so a pending payment flips to late within
	// an hour of its due date passing.
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.sweepOverduePayments, context.Background()),
		gocron.WithName("overdue-payment-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (s *Scheduler) sweepOverduePayments(ctx context.Context) {
	affected, err := s.paymentService.SweepOverdue(ctx)
	if err != nil {
		log.Printf("overdue payment sweep failed: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("overdue payment sweep marked payments late for %d owners", affected)
	}
}

func (s *Scheduler) Start() {
	log.Printf("Starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}
