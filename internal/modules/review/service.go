package review

import (
	"context"
	"errors"
	"fmt"

	"carhive/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	reviews  ReviewRepositoryInterface
	bookings BookingReader
}

func NewService(reviews ReviewRepositoryInterface, bookings BookingReader) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// Create validates the booking before accepting a review. The guards run
// in order so the caller gets the most specific failure: unknown booking,
// someone else's booking, booking not finished, booking already reviewed.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateReviewRequest) (*domain.Review, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if b.CustomerID == nil || *b.CustomerID != customerID {
		return nil, ErrNotYourBooking
	}

	if b.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}

	exists, err := s.reviews.ExistsByBooking(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		CarID:      b.CarID,
		AgencyID:   b.AgencyID,
		CustomerID: customerID,
		Rating:     domain.ClampRating(req.Rating),
		Comment:    req.Comment,
	}
	// Sub-ratings default to the overall rating when omitted.
	rv.Cleanliness = clampOrDefault(req.Cleanliness, rv.Rating)
	rv.Service = clampOrDefault(req.Service, rv.Rating)
	rv.Value = clampOrDefault(req.Value, rv.Rating)

	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

func clampOrDefault(r, def int) int {
	if r == 0 {
		return def
	}
	return domain.ClampRating(r)
}

func (s *Service) ListByCar(ctx context.Context, carID int64, q ListQuery) ([]domain.Review, error) {
	limit, offset := pageWindow(q)
	reviews, err := s.reviews.ListByCar(ctx, carID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list car reviews: %w", err)
	}
	return reviews, nil
}

func (s *Service) ListByAgency(ctx context.Context, agencyID int64, q ListQuery) ([]domain.Review, float64, error) {
	limit, offset := pageWindow(q)
	reviews, err := s.reviews.ListByAgency(ctx, agencyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list agency reviews: %w", err)
	}

	avg, err := s.reviews.AverageByAgency(ctx, agencyID)
	if err != nil {
		return nil, 0, fmt.Errorf("average rating: %w", err)
	}
	return reviews, avg, nil
}

// Respond stores the agency's public reply to a review it owns.
func (s *Service) Respond(ctx context.Context, agencyID, reviewID int64, text string) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	if rv.AgencyID != agencyID {
		return nil, ErrForbidden
	}

	updated, err := s.reviews.SetAgencyResponse(ctx, reviewID, text)
	if err != nil {
		return nil, fmt.Errorf("set agency response: %w", err)
	}
	return updated, nil
}

func pageWindow(q ListQuery) (limit, offset int) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit = q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}
