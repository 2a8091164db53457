package catalog

import (
	"context"

	"carhive/internal/domain"
	"carhive/internal/repository"
)

type CarRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	Update(ctx context.Context, c *domain.Car) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f repository.CarFilter) ([]domain.Car, int64, error)
}

// BookingCounter guards car deletion against bookings still holding the car.
type BookingCounter interface {
	CountActiveByCar(ctx context.Context, carID int64) (int64, error)
}
