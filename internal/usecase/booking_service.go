package usecase

import (
	"context"

	"rental-service/internal/domain/entity"
	"rental-service/internal/domain/repository"
	"rental-service/pkg/logger"
	"rental-service/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// BookingService lists bookings joined with their guests
type BookingService struct {
	ownerRez repository.OwnerRezRepository
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(ownerRez repository.OwnerRezRepository, m *metrics.Metrics, logger logger.Logger) *BookingService {
	return &BookingService{
		ownerRez: ownerRez,
		metrics:  m,
		logger:   logger,
	}
}

// ListBookings fetches a page of bookings and all guests created since guestSince at the
// same time. If either fetch fails the other is cancelled and the error is returned.
func (s *BookingService) ListBookings(ctx context.Context, query entity.BookingQuery, guestSince string) (*entity.BookingListing, error) {
	var (
		page   *entity.BookingPage
		guests []entity.Guest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.ownerRez.FetchBookings(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		guests, err = s.ownerRez.FetchGuests(gctx, guestSince)
		return err
	})

	if err := g.Wait(); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("list_bookings").Inc()
		s.logger.Error("Failed to fetch bookings", "error", err)
		return nil, err
	}

	rows := JoinBookings(page.Items, guests)
	s.logStatuses(rows)

	return &entity.BookingListing{
		Bookings: rows,
		Pagination: entity.Pagination{
			Total:   page.Total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: page.NextPageURL != "",
		},
	}, nil
}

// logStatuses counts booking statuses at debug level; unknown values pass through unchanged
func (s *BookingService) logStatuses(rows []entity.TransformedBooking) {
	if len(rows) == 0 {
		return
	}
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Status]++
	}
	s.logger.Debug("Booking statuses", "counts", counts, "rows", len(rows))
}
