package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"carhive/internal/domain"
	"carhive/internal/logger"
	"carhive/internal/notification"

	"gorm.io/gorm"
)

const intentSucceeded = "succeeded"

type Service struct {
	payments PaymentRepositoryInterface
	bookings BookingRepositoryInterface
	cars     CarReader
	users    CustomerReader
	gateway  Gateway
	mailer   notification.Mailer
	currency string
}

func NewService(
	payments PaymentRepositoryInterface,
	bookings BookingRepositoryInterface,
	cars CarReader,
	users CustomerReader,
	gateway Gateway,
	mailer notification.Mailer,
	currency string,
) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		cars:     cars,
		users:    users,
		gateway:  gateway,
		mailer:   mailer,
		currency: currency,
	}
}

// CreateIntent opens a payment intent for the booking and returns the
// client secret the frontend needs to collect the card. Calling it again
// for the same booking returns the already-open intent.
func (s *Service) CreateIntent(ctx context.Context, actorUserID *int64, req CreateIntentRequest) (*IntentResponse, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	// Guest bookings carry no customer id; authenticated callers must own
	// the booking.
	if b.CustomerID != nil && (actorUserID == nil || *actorUserID != *b.CustomerID) {
		return nil, ErrForbidden
	}

	if b.PaymentStatus == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	if b.PaymentIntentID != "" {
		existing, err := s.gateway.GetIntent(ctx, b.PaymentIntentID)
		if err == nil && existing.Status != "canceled" {
			return &IntentResponse{
				PaymentIntentID: existing.ID,
				ClientSecret:    existing.ClientSecret,
				Amount:          existing.Amount,
				Currency:        existing.Currency,
			}, nil
		}
	}

	email, name := b.GuestEmail, b.GuestName
	if b.CustomerID != nil {
		u, err := s.users.GetByID(ctx, *b.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("get customer: %w", err)
		}
		email, name = u.Email, u.Name
	}

	var customerRef string
	if email != "" {
		customerRef, err = s.gateway.GetOrCreateCustomer(ctx, email, name)
		if err != nil {
			logger.L().WithError(err).Warn("payment: customer lookup failed, continuing without customer ref")
			customerRef = ""
		}
	}

	amount := int64(math.Round(b.TotalPrice * 100))
	intent, err := s.gateway.CreateIntent(ctx, amount, s.currency, customerRef, map[string]string{
		"booking_id": strconv.FormatInt(b.ID, 10),
	})
	if err != nil {
		return nil, ErrProviderFailure
	}

	record := &domain.PaymentRecord{
		BookingID:   b.ID,
		IntentID:    intent.ID,
		CustomerRef: customerRef,
		Amount:      amount,
		Currency:    s.currency,
		Status:      domain.PaymentRecordCreated,
		RawPayload:  intent.Raw,
	}
	if err := s.payments.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record payment intent: %w", err)
	}
	if err := s.bookings.SetPaymentIntent(ctx, b.ID, intent.ID); err != nil {
		return nil, fmt.Errorf("attach intent to booking: %w", err)
	}

	return &IntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          amount,
		Currency:        s.currency,
	}, nil
}

// Confirm verifies the intent with the provider and, on success, marks
// the booking confirmed and paid. Repeated confirmations of the same
// intent are no-ops.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*domain.Booking, error) {
	record, err := s.payments.GetByIntentID(ctx, req.PaymentIntentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownIntent
		}
		return nil, fmt.Errorf("get payment record: %w", err)
	}

	intent, err := s.gateway.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, ErrProviderFailure
	}

	if intent.Status != intentSucceeded {
		if err := s.payments.UpdateStatus(ctx, intent.ID, domain.PaymentRecordFailed, intent.Raw); err != nil {
			logger.L().WithError(err).WithField("intent_id", intent.ID).Warn("payment: record status update failed")
		}
		return nil, ErrNotSucceeded
	}

	changed, err := s.payments.MarkSucceededIdempotent(ctx, intent.ID, intent.Raw, time.Now())
	if err != nil {
		return nil, fmt.Errorf("mark payment succeeded: %w", err)
	}

	if changed {
		if err := s.bookings.UpdateStatus(ctx, record.BookingID, domain.BookingConfirmed); err != nil {
			return nil, fmt.Errorf("confirm booking: %w", err)
		}
	}

	b, err := s.bookings.UpdatePaymentStatus(ctx, record.BookingID, domain.PaymentPaid)
	if err != nil {
		return nil, fmt.Errorf("mark booking paid: %w", err)
	}

	if changed {
		s.notifyConfirmed(ctx, b)
	}

	return b, nil
}

func (s *Service) notifyConfirmed(ctx context.Context, b *domain.Booking) {
	email, name := b.GuestEmail, b.GuestName
	if b.CustomerID != nil {
		u, err := s.users.GetByID(ctx, *b.CustomerID)
		if err != nil {
			logger.L().WithError(err).WithField("booking_id", b.ID).Warn("payment: customer lookup failed for confirmation email")
			return
		}
		email, name = u.Email, u.Name
	}
	if email == "" {
		return
	}

	carLabel := ""
	if car, err := s.cars.GetByID(ctx, b.CarID); err == nil {
		carLabel = fmt.Sprintf("%s %s %d", car.Make, car.Model, car.Year)
	}

	if err := s.mailer.SendBookingConfirmed(ctx, email, name, b.ID, carLabel, b.TotalPrice); err != nil {
		logger.L().WithError(err).WithField("booking_id", b.ID).Warn("payment: confirmation email failed")
	}
}
