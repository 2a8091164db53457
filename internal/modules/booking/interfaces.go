package booking

import (
	"context"

	"carhive/internal/domain"
)

type BookingRepositoryInterface interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
}

type CarReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

type AgencyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
}
