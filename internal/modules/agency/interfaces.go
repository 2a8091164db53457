package agency

import (
	"context"

	"carhive/internal/domain"
)

type AgencyRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
	Update(ctx context.Context, a *domain.Agency) error
}

type BookingRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByAgency(ctx context.Context, agencyID int64, status string, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	CountByAgencyAndStatus(ctx context.Context, agencyID int64, statuses ...domain.BookingStatus) (int64, error)
	SumRevenueByAgency(ctx context.Context, agencyID int64) (float64, error)
}

type CarCounter interface {
	CountByAgency(ctx context.Context, agencyID int64) (int64, error)
}

type RatingReader interface {
	AverageByAgency(ctx context.Context, agencyID int64) (float64, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
