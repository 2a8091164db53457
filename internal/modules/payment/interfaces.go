package payment

import (
	"context"
	"time"

	"carhive/internal/domain"
)

type PaymentRepositoryInterface interface {
	Create(ctx context.Context, p *domain.PaymentRecord) error
	GetByIntentID(ctx context.Context, intentID string) (*domain.PaymentRecord, error)
	MarkSucceededIdempotent(ctx context.Context, intentID, rawPayload string, paidAt time.Time) (bool, error)
	UpdateStatus(ctx context.Context, intentID string, status domain.PaymentRecordStatus, rawPayload string) error
}

type BookingRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetPaymentIntent(ctx context.Context, bookingID int64, intentID string) error
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error)
}

type CarReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Gateway abstracts the card processor so the service can be tested
// without network calls.
type Gateway interface {
	GetOrCreateCustomer(ctx context.Context, email, name string) (string, error)
	CreateIntent(ctx context.Context, amount int64, currency, customerRef string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

// Intent is the provider-neutral view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
	Raw          string
}
