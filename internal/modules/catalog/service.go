package catalog

import (
	"context"
	"errors"

	"carhive/internal/domain"
	"carhive/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	cars     CarRepositoryInterface
	bookings BookingCounter
}

func NewService(cars CarRepositoryInterface, bookings BookingCounter) *Service {
	return &Service{cars: cars, bookings: bookings}
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]domain.Car, int64, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return s.cars.Search(ctx, repository.CarFilter{
		City:     q.City,
		Category: q.Category,
		AgencyID: q.AgencyID,
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		Status:   q.Status,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *Service) Create(ctx context.Context, agencyID int64, req CreateCarRequest) (*domain.Car, error) {
	car := &domain.Car{
		AgencyID:     agencyID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Category:     domain.CarCategory(req.Category),
		LicensePlate: req.LicensePlate,
		PricePerDay:  req.PricePerDay,
		Status:       domain.CarAvailable,
		Seats:        req.Seats,
		Transmission: req.Transmission,
		FuelType:     req.FuelType,
		Specs:        req.Specs,
		Features:     req.Features,
		Images:       req.Images,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// Update mutates only the fields present in the request. Only the owning
// agency may touch its cars.
func (s *Service) Update(ctx context.Context, carID, agencyID int64, req UpdateCarRequest) (*domain.Car, error) {
	car, err := s.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.AgencyID != agencyID {
		return nil, ErrForbidden
	}

	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Category != nil {
		car.Category = domain.CarCategory(*req.Category)
	}
	if req.LicensePlate != nil {
		car.LicensePlate = *req.LicensePlate
	}
	if req.PricePerDay != nil {
		if *req.PricePerDay <= 0 {
			return nil, ErrValidation
		}
		car.PricePerDay = *req.PricePerDay
	}
	if req.Status != nil {
		car.Status = domain.CarStatus(*req.Status)
	}
	if req.Seats != nil {
		car.Seats = *req.Seats
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.FuelType != nil {
		car.FuelType = *req.FuelType
	}
	if req.Specs != nil {
		car.Specs = *req.Specs
	}
	if req.Features != nil {
		car.Features = *req.Features
	}
	if req.Images != nil {
		car.Images = *req.Images
	}

	if err := s.cars.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// Delete removes a car unless a non-terminal booking still references it.
func (s *Service) Delete(ctx context.Context, carID, agencyID int64) error {
	car, err := s.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if car.AgencyID != agencyID {
		return ErrForbidden
	}

	active, err := s.bookings.CountActiveByCar(ctx, carID)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrHasActiveBookings
	}

	return s.cars.Delete(ctx, carID)
}
