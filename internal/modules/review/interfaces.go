package review

import (
	"context"

	"carhive/internal/domain"
)

type ReviewRepositoryInterface interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsByBooking(ctx context.Context, bookingID int64) (bool, error)
	ListByCar(ctx context.Context, carID int64, limit, offset int) ([]domain.Review, error)
	ListByAgency(ctx context.Context, agencyID int64, limit, offset int) ([]domain.Review, error)
	AverageByAgency(ctx context.Context, agencyID int64) (float64, error)
	SetAgencyResponse(ctx context.Context, reviewID int64, resp string) (*domain.Review, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
