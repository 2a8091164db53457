package review

import (
	"context"
	"testing"

	"carhive/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil {
		rv.ID = 501 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsByBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListByCar(ctx context.Context, carID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, carID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByAgency(ctx context.Context, agencyID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, agencyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) AverageByAgency(ctx context.Context, agencyID int64) (float64, error) {
	args := m.Called(ctx, agencyID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReviewRepository) SetAgencyResponse(ctx context.Context, reviewID int64, resp string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID, resp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func completedBooking(customerID int64) *domain.Booking {
	return &domain.Booking{
		ID:         42,
		CarID:      7,
		AgencyID:   3,
		CustomerID: &customerID,
		Status:     domain.BookingCompleted,
	}
}

func TestService_Create_Success(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(9), nil)
	mockReviews.On("ExistsByBooking", mock.Anything, int64(42)).Return(false, nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockReviews, mockBookings)

	rv, err := service.Create(context.Background(), 9, CreateReviewRequest{
		BookingID: 42,
		Rating:    4,
		Comment:   "Great car",
	})

	assert.NoError(t, err)
	assert.NotNil(t, rv)
	assert.Equal(t, int64(7), rv.CarID)
	assert.Equal(t, int64(3), rv.AgencyID)
	assert.Equal(t, 4, rv.Rating)
	mockReviews.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_BookingNotFound(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockReviews, mockBookings)

	_, err := service.Create(context.Background(), 9, CreateReviewRequest{BookingID: 42, Rating: 4})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ForeignBooking(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(9), nil)

	service := NewService(mockReviews, mockBookings)

	_, err := service.Create(context.Background(), 10, CreateReviewRequest{BookingID: 42, Rating: 4})
	assert.ErrorIs(t, err, ErrNotYourBooking)
	mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_BookingNotCompleted(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	b := completedBooking(9)
	b.Status = domain.BookingConfirmed
	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

	service := NewService(mockReviews, mockBookings)

	_, err := service.Create(context.Background(), 9, CreateReviewRequest{BookingID: 42, Rating: 4})
	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestService_Create_DuplicateReview(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(9), nil)
	mockReviews.On("ExistsByBooking", mock.Anything, int64(42)).Return(true, nil)

	service := NewService(mockReviews, mockBookings)

	_, err := service.Create(context.Background(), 9, CreateReviewRequest{BookingID: 42, Rating: 4})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ClampsRatings(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(9), nil)
	mockReviews.On("ExistsByBooking", mock.Anything, int64(42)).Return(false, nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockReviews, mockBookings)

	rv, err := service.Create(context.Background(), 9, CreateReviewRequest{
		BookingID:   42,
		Rating:      7,
		Cleanliness: -3,
		Service:     2,
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	assert.Equal(t, 1, rv.Cleanliness)
	assert.Equal(t, 2, rv.Service)
	// Omitted sub-ratings inherit the clamped overall rating.
	assert.Equal(t, 5, rv.Value)
}

func TestService_Create_ZeroRatingStoresMinimum(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(9), nil)
	mockReviews.On("ExistsByBooking", mock.Anything, int64(42)).Return(false, nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockReviews, mockBookings)

	rv, err := service.Create(context.Background(), 9, CreateReviewRequest{BookingID: 42, Rating: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, rv.Rating)
}

func TestService_Respond_OwnershipEnforced(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockReviews.On("GetByID", mock.Anything, int64(501)).Return(&domain.Review{ID: 501, AgencyID: 3}, nil)

	service := NewService(mockReviews, mockBookings)

	_, err := service.Respond(context.Background(), 4, 501, "Thanks!")
	assert.ErrorIs(t, err, ErrForbidden)
	mockReviews.AssertNotCalled(t, "SetAgencyResponse", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Respond_Success(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	resp := "Thanks for the feedback"
	mockReviews.On("GetByID", mock.Anything, int64(501)).Return(&domain.Review{ID: 501, AgencyID: 3}, nil)
	mockReviews.On("SetAgencyResponse", mock.Anything, int64(501), resp).
		Return(&domain.Review{ID: 501, AgencyID: 3, AgencyResponse: &resp}, nil)

	service := NewService(mockReviews, mockBookings)

	rv, err := service.Respond(context.Background(), 3, 501, resp)
	assert.NoError(t, err)
	assert.Equal(t, resp, *rv.AgencyResponse)
}
