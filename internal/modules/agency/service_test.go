package agency

import (
	"context"
	"testing"

	"carhive/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockAgencyRepository struct {
	mock.Mock
}

func (m *MockAgencyRepository) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *MockAgencyRepository) Update(ctx context.Context, a *domain.Agency) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByAgency(ctx context.Context, agencyID int64, status string, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, agencyID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func (m *MockBookingRepository) CountByAgencyAndStatus(ctx context.Context, agencyID int64, statuses ...domain.BookingStatus) (int64, error) {
	callArgs := []interface{}{ctx, agencyID}
	for _, st := range statuses {
		callArgs = append(callArgs, st)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) SumRevenueByAgency(ctx context.Context, agencyID int64) (float64, error) {
	args := m.Called(ctx, agencyID)
	return args.Get(0).(float64), args.Error(1)
}

type MockCarCounter struct {
	mock.Mock
}

func (m *MockCarCounter) CountByAgency(ctx context.Context, agencyID int64) (int64, error) {
	args := m.Called(ctx, agencyID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRatingReader struct {
	mock.Mock
}

func (m *MockRatingReader) AverageByAgency(ctx context.Context, agencyID int64) (float64, error) {
	args := m.Called(ctx, agencyID)
	return args.Get(0).(float64), args.Error(1)
}

type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, name, resetLink string) error {
	return m.Called(ctx, to, name, resetLink).Error(0)
}

func (m *MockMailer) SendBookingConfirmed(ctx context.Context, to, name string, bookingID int64, carLabel string, totalPrice float64) error {
	return m.Called(ctx, to, name, bookingID, carLabel, totalPrice).Error(0)
}

func (m *MockMailer) SendBookingStatusChanged(ctx context.Context, to, name string, bookingID int64, newStatus string) error {
	return m.Called(ctx, to, name, bookingID, newStatus).Error(0)
}

func (m *MockMailer) SendAgencyApproved(ctx context.Context, to, agencyName string) error {
	return m.Called(ctx, to, agencyName).Error(0)
}

func (m *MockMailer) SendAgencyRejected(ctx context.Context, to, agencyName, reason string) error {
	return m.Called(ctx, to, agencyName, reason).Error(0)
}

func (m *MockMailer) SendNewBookingAlert(ctx context.Context, to, agencyName string, bookingID int64, carLabel string) error {
	return m.Called(ctx, to, agencyName, bookingID, carLabel).Error(0)
}

func (m *MockMailer) SendSupportReply(ctx context.Context, to, name string, ticketID int64, subject string) error {
	return m.Called(ctx, to, name, ticketID, subject).Error(0)
}

type agencyMocks struct {
	agencies *MockAgencyRepository
	bookings *MockBookingRepository
	cars     *MockCarCounter
	ratings  *MockRatingReader
	users    *MockCustomerReader
	mailer   *MockMailer
}

func newAgencyService() (*Service, agencyMocks) {
	m := agencyMocks{
		agencies: new(MockAgencyRepository),
		bookings: new(MockBookingRepository),
		cars:     new(MockCarCounter),
		ratings:  new(MockRatingReader),
		users:    new(MockCustomerReader),
		mailer:   new(MockMailer),
	}
	return NewService(m.agencies, m.bookings, m.cars, m.ratings, m.users, m.mailer), m
}

func TestService_GetDashboardStats(t *testing.T) {
	service, m := newAgencyService()

	m.cars.On("CountByAgency", mock.Anything, int64(3)).Return(int64(12), nil)
	m.bookings.On("CountByAgencyAndStatus", mock.Anything, int64(3), domain.BookingPending).Return(int64(4), nil)
	m.bookings.On("CountByAgencyAndStatus", mock.Anything, int64(3), domain.BookingConfirmed, domain.BookingInProgress).Return(int64(6), nil)
	m.bookings.On("CountByAgencyAndStatus", mock.Anything, int64(3), domain.BookingCompleted).Return(int64(30), nil)
	m.bookings.On("SumRevenueByAgency", mock.Anything, int64(3)).Return(2400.50, nil)
	m.ratings.On("AverageByAgency", mock.Anything, int64(3)).Return(4.3, nil)

	stats, err := service.GetDashboardStats(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalCars)
	assert.Equal(t, int64(4), stats.PendingBookings)
	assert.Equal(t, int64(6), stats.ActiveBookings)
	assert.Equal(t, int64(30), stats.CompletedBookings)
	assert.Equal(t, 2400.50, stats.TotalRevenue)
	assert.Equal(t, 4.3, stats.AverageRating)
}

func TestService_UpdateBookingStatus_Success(t *testing.T) {
	service, m := newAgencyService()

	customerID := int64(9)
	m.bookings.On("GetByID", mock.Anything, int64(42)).Return(&domain.Booking{
		ID:         42,
		AgencyID:   3,
		CustomerID: &customerID,
		Status:     domain.BookingConfirmed,
	}, nil)
	m.bookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingInProgress).Return(nil)
	m.users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9, Email: "c@example.com", Name: "Casey"}, nil)
	m.mailer.On("SendBookingStatusChanged", mock.Anything, "c@example.com", "Casey", int64(42), "in_progress").Return(nil)

	b, err := service.UpdateBookingStatus(context.Background(), 3, 42, domain.BookingInProgress)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingInProgress, b.Status)
	m.mailer.AssertCalled(t, "SendBookingStatusChanged", mock.Anything, "c@example.com", "Casey", int64(42), "in_progress")
}

func TestService_UpdateBookingStatus_ForeignAgency(t *testing.T) {
	service, m := newAgencyService()

	m.bookings.On("GetByID", mock.Anything, int64(42)).Return(&domain.Booking{ID: 42, AgencyID: 5}, nil)

	_, err := service.UpdateBookingStatus(context.Background(), 3, 42, domain.BookingCompleted)

	assert.ErrorIs(t, err, ErrForbidden)
	m.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateBookingStatus_NotFound(t *testing.T) {
	service, m := newAgencyService()

	m.bookings.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.UpdateBookingStatus(context.Background(), 3, 99, domain.BookingCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateBookingStatus_GuestGetsEmail(t *testing.T) {
	service, m := newAgencyService()

	m.bookings.On("GetByID", mock.Anything, int64(42)).Return(&domain.Booking{
		ID:         42,
		AgencyID:   3,
		GuestName:  "Walk In",
		GuestEmail: "walkin@example.com",
		Status:     domain.BookingPending,
	}, nil)
	m.bookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingConfirmed).Return(nil)
	m.mailer.On("SendBookingStatusChanged", mock.Anything, "walkin@example.com", "Walk In", int64(42), "confirmed").Return(nil)

	_, err := service.UpdateBookingStatus(context.Background(), 3, 42, domain.BookingConfirmed)

	assert.NoError(t, err)
	m.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	m.mailer.AssertCalled(t, "SendBookingStatusChanged", mock.Anything, "walkin@example.com", "Walk In", int64(42), "confirmed")
}

func TestService_UpdateProfile_PartialMerge(t *testing.T) {
	service, m := newAgencyService()

	m.agencies.On("GetByID", mock.Anything, int64(3)).Return(&domain.Agency{
		ID:   3,
		Name: "City Wheels",
		City: "Berlin",
	}, nil)
	m.agencies.On("Update", mock.Anything, mock.Anything).Return(nil)

	desc := "Compact cars downtown"
	phone := "+49 30 1234"
	a, err := service.UpdateProfile(context.Background(), 3, UpdateProfileRequest{
		Description: &desc,
		Phone:       &phone,
	})

	assert.NoError(t, err)
	assert.Equal(t, "City Wheels", a.Name)
	assert.Equal(t, "Berlin", a.City)
	assert.Equal(t, "Compact cars downtown", a.Description)
	assert.Equal(t, "+49 30 1234", a.Phone)
}
