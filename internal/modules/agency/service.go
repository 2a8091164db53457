package agency

import (
	"context"
	"errors"
	"fmt"

	"carhive/internal/domain"
	"carhive/internal/logger"
	"carhive/internal/notification"

	"gorm.io/gorm"
)

type Service struct {
	agencies AgencyRepositoryInterface
	bookings BookingRepositoryInterface
	cars     CarCounter
	ratings  RatingReader
	users    CustomerReader
	mailer   notification.Mailer
}

func NewService(
	agencies AgencyRepositoryInterface,
	bookings BookingRepositoryInterface,
	cars CarCounter,
	ratings RatingReader,
	users CustomerReader,
	mailer notification.Mailer,
) *Service {
	return &Service{
		agencies: agencies,
		bookings: bookings,
		cars:     cars,
		ratings:  ratings,
		users:    users,
		mailer:   mailer,
	}
}

func (s *Service) GetProfile(ctx context.Context, agencyID int64) (*domain.Agency, error) {
	a, err := s.agencies.GetByID(ctx, agencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get agency: %w", err)
	}
	return a, nil
}

func (s *Service) UpdateProfile(ctx context.Context, agencyID int64, req UpdateProfileRequest) (*domain.Agency, error) {
	a, err := s.GetProfile(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.City != nil {
		a.City = *req.City
	}
	if req.Address != nil {
		a.Address = *req.Address
	}
	if req.Phone != nil {
		a.Phone = *req.Phone
	}
	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.LogoURL != nil {
		a.LogoURL = *req.LogoURL
	}

	if err := s.agencies.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update agency: %w", err)
	}
	return a, nil
}

// GetDashboardStats aggregates the figures shown on the agency dashboard.
// Each metric is its own query against the indexed columns.
func (s *Service) GetDashboardStats(ctx context.Context, agencyID int64) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalCars, err = s.cars.CountByAgency(ctx, agencyID); err != nil {
		return nil, fmt.Errorf("count cars: %w", err)
	}
	if stats.PendingBookings, err = s.bookings.CountByAgencyAndStatus(ctx, agencyID, domain.BookingPending); err != nil {
		return nil, fmt.Errorf("count pending bookings: %w", err)
	}
	if stats.ActiveBookings, err = s.bookings.CountByAgencyAndStatus(ctx, agencyID, domain.BookingConfirmed, domain.BookingInProgress); err != nil {
		return nil, fmt.Errorf("count active bookings: %w", err)
	}
	if stats.CompletedBookings, err = s.bookings.CountByAgencyAndStatus(ctx, agencyID, domain.BookingCompleted); err != nil {
		return nil, fmt.Errorf("count completed bookings: %w", err)
	}
	if stats.TotalRevenue, err = s.bookings.SumRevenueByAgency(ctx, agencyID); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	if stats.AverageRating, err = s.ratings.AverageByAgency(ctx, agencyID); err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}

	return stats, nil
}

func (s *Service) GetBookings(ctx context.Context, agencyID int64, q BookingsQuery) ([]domain.Booking, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	bookings, err := s.bookings.ListByAgency(ctx, agencyID, q.Status, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list agency bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus sets any valid status on a booking owned by the
// agency. Ownership is re-checked against the stored booking rather than
// trusting the route: the token's agency must match the booking's agency.
func (s *Service) UpdateBookingStatus(ctx context.Context, agencyID, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if b.AgencyID != agencyID {
		return nil, ErrForbidden
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	b.Status = status

	s.notifyStatusChange(ctx, b)

	return b, nil
}

// notifyStatusChange emails the customer about the new status. Failures
// are logged and never surfaced to the caller.
func (s *Service) notifyStatusChange(ctx context.Context, b *domain.Booking) {
	email, name := b.GuestEmail, b.GuestName
	if b.CustomerID != nil {
		u, err := s.users.GetByID(ctx, *b.CustomerID)
		if err != nil {
			logger.L().WithError(err).WithField("booking_id", b.ID).Warn("status notification: customer lookup failed")
			return
		}
		email, name = u.Email, u.Name
	}
	if email == "" {
		return
	}

	if err := s.mailer.SendBookingStatusChanged(ctx, email, name, b.ID, string(b.Status)); err != nil {
		logger.L().WithError(err).WithField("booking_id", b.ID).Warn("status notification: send failed")
	}
}
