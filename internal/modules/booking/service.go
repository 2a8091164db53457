package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"carhive/internal/domain"
	"carhive/internal/logger"
	"carhive/internal/notification"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings BookingRepositoryInterface
	cars     CarReader
	agencies AgencyReader
	mailer   notification.Mailer
}

func NewService(bookings BookingRepositoryInterface, cars CarReader, agencies AgencyReader, mailer notification.Mailer) *Service {
	return &Service{bookings: bookings, cars: cars, agencies: agencies, mailer: mailer}
}

// Create books a car for a date range. customerID is nil for guest checkout,
// in which case the guest contact fields must be present.
func (s *Service) Create(ctx context.Context, customerID *int64, req CreateBookingRequest) (*domain.Booking, error) {
	pickup, err := time.Parse(dateLayout, req.PickupDate)
	if err != nil {
		return nil, ErrValidation
	}
	ret, err := time.Parse(dateLayout, req.ReturnDate)
	if err != nil {
		return nil, ErrValidation
	}

	if !ret.After(pickup) {
		return nil, ErrValidation
	}
	today := time.Now().Truncate(24 * time.Hour)
	if pickup.Before(today) {
		return nil, ErrValidation
	}

	if customerID == nil {
		if req.GuestName == "" || req.GuestEmail == "" {
			return nil, ErrValidation
		}
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if car.Status != domain.CarAvailable {
		return nil, ErrNotAvailable
	}

	days := int(ret.Sub(pickup).Hours() / 24)
	total := float64(days) * car.PricePerDay
	total = math.Round(total*100) / 100

	b := &domain.Booking{
		CarID:         car.ID,
		AgencyID:      car.AgencyID,
		CustomerID:    customerID,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		PickupDate:    pickup,
		ReturnDate:    ret,
		TotalPrice:    total,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
		Notes:         req.Notes,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	s.notifyAgency(ctx, b, car)
	return b, nil
}

// notifyAgency alerts the owning agency about a new booking. Email failures
// are logged and never fail the booking.
func (s *Service) notifyAgency(ctx context.Context, b *domain.Booking, car *domain.Car) {
	a, err := s.agencies.GetByID(ctx, b.AgencyID)
	if err != nil {
		logger.L().WithError(err).WithField("booking_id", b.ID).Warn("booking: agency lookup failed for alert email")
		return
	}
	if a.Email == "" {
		return
	}
	carLabel := fmt.Sprintf("%s %s %d", car.Make, car.Model, car.Year)
	if err := s.mailer.SendNewBookingAlert(ctx, a.Email, a.Name, b.ID, carLabel); err != nil {
		logger.L().WithError(err).WithField("booking_id", b.ID).Warn("booking: agency alert email failed")
	}
}

func (s *Service) GetMyBookings(ctx context.Context, customerID int64, page, limit int) ([]domain.Booking, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.ListByCustomer(ctx, customerID, limit, (page-1)*limit)
}

// GetByID returns the booking to its customer, the owning agency, or an admin.
func (s *Service) GetByID(ctx context.Context, bookingID, actorUserID int64, actorRole string, actorAgencyID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch {
	case actorRole == string(domain.RoleAdmin):
	case b.CustomerID != nil && *b.CustomerID == actorUserID:
	case domain.UserRole(actorRole).IsAgency() && b.AgencyID == actorAgencyID:
	default:
		return nil, ErrForbidden
	}
	return b, nil
}

// Cancel lets a customer cancel their own booking while it is still pending
// or confirmed.
func (s *Service) Cancel(ctx context.Context, bookingID, customerID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.CustomerID == nil || *b.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, ErrNotCancellable
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled
	now := time.Now()
	b.CancelledAt = &now
	return b, nil
}
