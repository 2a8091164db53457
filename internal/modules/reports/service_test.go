package reports

import (
	"context"
	"testing"
	"time"

	"carhive/internal/domain"
	"carhive/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingSource struct {
	mock.Mock
}

func (m *MockBookingSource) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingSource) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingSource) SumRevenueAll(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type MockAgencySource struct {
	mock.Mock
}

func (m *MockAgencySource) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *MockAgencySource) Update(ctx context.Context, a *domain.Agency) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgencySource) ListByStatus(ctx context.Context, status domain.AgencyStatus, limit, offset int) ([]domain.Agency, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Agency), args.Get(1).(int64), args.Error(2)
}

func (m *MockAgencySource) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Agency, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agency), args.Error(1)
}

func (m *MockAgencySource) CountByStatus(ctx context.Context, status domain.AgencyStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAgencySource) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAgencySource) GetNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockAgencySource) GetCities(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]string), args.Error(1)
}

type MockCarSource struct {
	mock.Mock
}

func (m *MockCarSource) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarSource) CountByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.CategoryCount), args.Error(1)
}

type MockUserSource struct {
	mock.Mock
}

func (m *MockUserSource) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserSource) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*Service, *MockBookingSource, *MockAgencySource, *MockCarSource, *MockUserSource) {
	bookings := new(MockBookingSource)
	agencies := new(MockAgencySource)
	cars := new(MockCarSource)
	users := new(MockUserSource)
	return NewService(bookings, agencies, cars, users), bookings, agencies, cars, users
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestService_Summary_EmptyRange(t *testing.T) {
	service, bookings, agencies, cars, _ := newTestService()

	bookings.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Booking{}, nil)
	agencies.On("CountByStatus", mock.Anything, domain.AgencyApproved).Return(int64(0), nil)
	cars.On("CountActive", mock.Anything).Return(int64(0), nil)

	out, err := service.Summary(context.Background(), day(2026, 1, 1), day(2026, 2, 1))

	assert.NoError(t, err)
	assert.Equal(t, float64(0), out.TotalRevenue)
	assert.Equal(t, float64(0), out.CompletionRate)
	assert.Equal(t, float64(0), out.CancellationRate)
	assert.Equal(t, int64(0), out.BookingCount)
}

func TestService_Summary_CommissionAndRates(t *testing.T) {
	service, bookings, agencies, cars, _ := newTestService()

	rows := []domain.Booking{
		{Status: domain.BookingCompleted, TotalPrice: 600},
		{Status: domain.BookingConfirmed, TotalPrice: 400},
		{Status: domain.BookingCancelled, TotalPrice: 300},
		{Status: domain.BookingPending, TotalPrice: 100},
	}
	bookings.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)
	agencies.On("CountByStatus", mock.Anything, domain.AgencyApproved).Return(int64(2), nil)
	cars.On("CountActive", mock.Anything).Return(int64(10), nil)

	out, err := service.Summary(context.Background(), day(2026, 1, 1), day(2026, 2, 1))

	assert.NoError(t, err)
	// Cancelled and pending bookings contribute no revenue.
	assert.Equal(t, float64(1000), out.TotalRevenue)
	assert.Equal(t, float64(50), out.Commission)
	assert.Equal(t, float64(950), out.NetPayout)
	assert.Equal(t, int64(4), out.BookingCount)
	assert.Equal(t, float64(25), out.CompletionRate)
	assert.Equal(t, float64(25), out.CancellationRate)
}

func TestService_Series_PreInitializedBuckets(t *testing.T) {
	service, bookings, agencies, _, _ := newTestService()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	bookings.On("ListCreatedBetween", mock.Anything, from, to).Return([]domain.Booking{
		{Status: domain.BookingCompleted, TotalPrice: 200, CreatedAt: day(2026, 3, 2)},
	}, nil)
	agencies.On("ListCreatedBetween", mock.Anything, from, to).Return([]domain.Agency{
		{CreatedAt: day(2026, 3, 3)},
	}, nil)

	out, err := service.Series(context.Background(), from, to, "day")

	assert.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, "2026-03-01", out[0].Key)
	assert.Equal(t, int64(0), out[0].Bookings)
	assert.Equal(t, int64(1), out[1].Bookings)
	assert.Equal(t, float64(200), out[1].Revenue)
	assert.Equal(t, int64(1), out[2].NewAgencies)
}

func TestService_Series_MonthGrouping(t *testing.T) {
	service, bookings, agencies, _, _ := newTestService()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	bookings.On("ListCreatedBetween", mock.Anything, from, to).Return([]domain.Booking{
		{Status: domain.BookingConfirmed, TotalPrice: 100, CreatedAt: day(2026, 1, 15)},
		{Status: domain.BookingConfirmed, TotalPrice: 150, CreatedAt: day(2026, 2, 10)},
	}, nil)
	agencies.On("ListCreatedBetween", mock.Anything, from, to).Return([]domain.Agency{}, nil)

	out, err := service.Series(context.Background(), from, to, "month")

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "2026-01", out[0].Key)
	assert.Equal(t, float64(100), out[0].Revenue)
	assert.Equal(t, "2026-02", out[1].Key)
	assert.Equal(t, float64(150), out[1].Revenue)
}

func TestService_TopAgencies_RankedAndLimited(t *testing.T) {
	service, bookings, agencies, _, _ := newTestService()

	bookings.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Booking{
		{AgencyID: 1, Status: domain.BookingCompleted, TotalPrice: 100},
		{AgencyID: 2, Status: domain.BookingCompleted, TotalPrice: 500},
		{AgencyID: 3, Status: domain.BookingCompleted, TotalPrice: 300},
	}, nil)
	agencies.On("GetNames", mock.Anything, mock.Anything).Return(map[int64]string{
		1: "City Wheels", 2: "Coastal Rides", 3: "Nordic Motors",
	}, nil)

	out, err := service.TopAgencies(context.Background(), day(2026, 1, 1), day(2026, 2, 1), 2)

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "Coastal Rides", out[0].Name)
	assert.Equal(t, float64(500), out[0].Revenue)
	assert.Equal(t, "Nordic Motors", out[1].Name)
}

func TestService_StatusDistribution_Percentages(t *testing.T) {
	service, bookings, _, _, _ := newTestService()

	bookings.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Booking{
		{Status: domain.BookingCompleted},
		{Status: domain.BookingCompleted},
		{Status: domain.BookingCompleted},
		{Status: domain.BookingCancelled},
	}, nil)

	out, err := service.StatusDistribution(context.Background(), day(2026, 1, 1), day(2026, 2, 1))

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "completed", out[0].Status)
	assert.Equal(t, float64(75), out[0].Percentage)
	assert.Equal(t, float64(25), out[1].Percentage)
}

func TestService_PlatformStats(t *testing.T) {
	service, bookings, agencies, cars, users := newTestService()

	users.On("CountAll", mock.Anything).Return(int64(120), nil)
	agencies.On("CountAll", mock.Anything).Return(int64(8), nil)
	agencies.On("CountByStatus", mock.Anything, domain.AgencyPending).Return(int64(2), nil)
	cars.On("CountActive", mock.Anything).Return(int64(40), nil)
	bookings.On("CountAll", mock.Anything).Return(int64(300), nil)
	bookings.On("SumRevenueAll", mock.Anything).Return(float64(20000), nil)

	out, err := service.PlatformStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(120), out.TotalUsers)
	assert.Equal(t, int64(2), out.PendingAgencies)
	assert.Equal(t, float64(1000), out.TotalCommission)
}
