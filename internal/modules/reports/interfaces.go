package reports

import (
	"context"
	"time"

	"carhive/internal/domain"
	"carhive/internal/repository"
)

type BookingReportSource interface {
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	SumRevenueAll(ctx context.Context) (float64, error)
}

type AgencyReportSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
	Update(ctx context.Context, a *domain.Agency) error
	ListByStatus(ctx context.Context, status domain.AgencyStatus, limit, offset int) ([]domain.Agency, int64, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Agency, error)
	CountByStatus(ctx context.Context, status domain.AgencyStatus) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	GetNames(ctx context.Context, ids []int64) (map[int64]string, error)
	GetCities(ctx context.Context, ids []int64) (map[int64]string, error)
}

type CarReportSource interface {
	CountActive(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context) ([]repository.CategoryCount, error)
}

type UserReportSource interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	CountAll(ctx context.Context) (int64, error)
}
