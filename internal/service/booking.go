package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfreitag/fahrtenlog/internal/domain"
	"github.com/mfreitag/fahrtenlog/internal/repo"
)

// BookingService implements read access to persisted merged timelines.
type BookingService struct {
	repo repo.BookingRepo
}

// NewBookingService constructs a BookingService backed by the provided BookingRepo.
func NewBookingService(r repo.BookingRepo) *BookingService {
	return &BookingService{repo: r}
}

// ListByRun returns one run's merged bookings, optionally bounded to a
// reservation-start range. Zero times leave the corresponding bound open.
func (s *BookingService) ListByRun(ctx context.Context, runID uuid.UUID, from, to time.Time) ([]domain.Booking, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, fmt.Errorf("service.BookingService.ListByRun: %w: from is after to", domain.ErrValidation)
	}

	bookings, err := s.repo.ListByRun(ctx, runID, from, to)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.ListByRun: %w", err)
	}
	return bookings, nil
}
