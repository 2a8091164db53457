package payment

import (
	"context"
	"testing"
	"time"

	"carhive/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.PaymentRecord) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 601 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) MarkSucceededIdempotent(ctx context.Context, intentID, rawPayload string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, intentID, rawPayload, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, intentID string, status domain.PaymentRecordStatus, rawPayload string) error {
	args := m.Called(ctx, intentID, status, rawPayload)
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

func (m *MockBookingRepository) SetPaymentIntent(ctx context.Context, bookingID int64, intentID string) error {
	args := m.Called(ctx, bookingID, intentID)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockCarReader struct {
	mock.Mock
}

func (m *MockCarReader) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
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

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetOrCreateCustomer(ctx context.Context, email, name string) (string, error) {
	args := m.Called(ctx, email, name)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CreateIntent(ctx context.Context, amount int64, currency, customerRef string, metadata map[string]string) (*Intent, error) {
	args := m.Called(ctx, amount, currency, customerRef, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Intent), args.Error(1)
}

func (m *MockGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Intent), args.Error(1)
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

type paymentMocks struct {
	payments *MockPaymentRepository
	bookings *MockBookingRepository
	cars     *MockCarReader
	users    *MockCustomerReader
	gateway  *MockGateway
	mailer   *MockMailer
}

func newPaymentService() (*Service, paymentMocks) {
	m := paymentMocks{
		payments: new(MockPaymentRepository),
		bookings: new(MockBookingRepository),
		cars:     new(MockCarReader),
		users:    new(MockCustomerReader),
		gateway:  new(MockGateway),
		mailer:   new(MockMailer),
	}
	return NewService(m.payments, m.bookings, m.cars, m.users, m.gateway, m.mailer, "usd"), m
}

func unpaidBooking(customerID int64) *domain.Booking {
	return &domain.Booking{
		ID:            42,
		CarID:         7,
		AgencyID:      3,
		CustomerID:    &customerID,
		TotalPrice:    149.97,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
}

func TestService_CreateIntent_AmountInMinorUnits(t *testing.T) {
	service, m := newPaymentService()

	customerID := int64(9)
	m.bookings.On("GetByID", mock.Anything, int64(42)).Return(unpaidBooking(9), nil)
	m.users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9, Email: "c@example.com", Name: "Casey"}, nil)
	m.gateway.On("GetOrCreateCustomer", mock.Anything, "c@example.com", "Casey").Return("cus_123", nil)
	m.gateway.On("CreateIntent", mock.Anything, int64(14997), "usd", "cus_123", map[string]string{"booking_id": "42"}).
		Return(&Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Status: "requires_payment_method", Amount: 14997, Currency: "usd"}, nil)
	m.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.bookings.On("SetPaymentIntent", mock.Anything, int64(42), "pi_1").Return(nil)

	out, err := service.CreateIntent(context.Background(), &customerID, CreateIntentRequest{BookingID: 42})

	assert.NoError(t, err)
	assert.Equal(t, "pi_1", out.PaymentIntentID)
	assert.Equal(t, int64(14997), out.Amount)
	assert.Equal(t, "pi_1_secret", out.ClientSecret)
}

func TestService_CreateIntent_ForeignBooking(t *testing.T) {
	service, m := newPaymentService()

	actor := int64(10)
	m.bookings.On("GetByID", mock.Anything, int64(42)).Return(unpaidBooking(9), nil)

	_, err := service.CreateIntent(context.Background(), &actor, CreateIntentRequest{BookingID: 42})
	assert.ErrorIs(t, err, ErrForbidden)
	m.gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateIntent_AlreadyPaid(t *testing.T) {
	service, m := newPaymentService()

	customerID := int64(9)
	b := unpaidBooking(9)
	b.PaymentStatus = domain.PaymentPaid
	m.bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

	_, err := service.CreateIntent(context.Background(), &customerID, CreateIntentRequest{BookingID: 42})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestService_CreateIntent_ReusesOpenIntent(t *testing.T) {
	service, m := newPaymentService()

	customerID := int64(9)
	b := unpaidBooking(9)
	b.PaymentIntentID = "pi_1"
	m.bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
	m.gateway.On("GetIntent", mock.Anything, "pi_1").
		Return(&Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Status: "requires_payment_method", Amount: 14997, Currency: "usd"}, nil)

	out, err := service.CreateIntent(context.Background(), &customerID, CreateIntentRequest{BookingID: 42})

	assert.NoError(t, err)
	assert.Equal(t, "pi_1", out.PaymentIntentID)
	m.gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Confirm_Success(t *testing.T) {
	service, m := newPaymentService()

	m.payments.On("GetByIntentID", mock.Anything, "pi_1").
		Return(&domain.PaymentRecord{ID: 601, BookingID: 42, IntentID: "pi_1"}, nil)
	m.gateway.On("GetIntent", mock.Anything, "pi_1").
		Return(&Intent{ID: "pi_1", Status: "succeeded", Raw: "{}"}, nil)
	m.payments.On("MarkSucceededIdempotent", mock.Anything, "pi_1", "{}", mock.Anything).Return(true, nil)
	m.bookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingConfirmed).Return(nil)

	paid := unpaidBooking(9)
	paid.Status = domain.BookingConfirmed
	paid.PaymentStatus = domain.PaymentPaid
	m.bookings.On("UpdatePaymentStatus", mock.Anything, int64(42), domain.PaymentPaid).Return(paid, nil)

	m.users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9, Email: "c@example.com", Name: "Casey"}, nil)
	m.cars.On("GetByID", mock.Anything, int64(7)).Return(&domain.Car{ID: 7, Make: "VW", Model: "Golf", Year: 2022}, nil)
	m.mailer.On("SendBookingConfirmed", mock.Anything, "c@example.com", "Casey", int64(42), "VW Golf 2022", 149.97).Return(nil)

	b, err := service.Confirm(context.Background(), ConfirmRequest{PaymentIntentID: "pi_1"})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
	m.mailer.AssertCalled(t, "SendBookingConfirmed", mock.Anything, "c@example.com", "Casey", int64(42), "VW Golf 2022", 149.97)
}

func TestService_Confirm_RepeatIsNoOp(t *testing.T) {
	service, m := newPaymentService()

	m.payments.On("GetByIntentID", mock.Anything, "pi_1").
		Return(&domain.PaymentRecord{ID: 601, BookingID: 42, IntentID: "pi_1", Status: domain.PaymentRecordSucceeded}, nil)
	m.gateway.On("GetIntent", mock.Anything, "pi_1").
		Return(&Intent{ID: "pi_1", Status: "succeeded", Raw: "{}"}, nil)
	m.payments.On("MarkSucceededIdempotent", mock.Anything, "pi_1", "{}", mock.Anything).Return(false, nil)

	paid := unpaidBooking(9)
	paid.Status = domain.BookingConfirmed
	paid.PaymentStatus = domain.PaymentPaid
	m.bookings.On("UpdatePaymentStatus", mock.Anything, int64(42), domain.PaymentPaid).Return(paid, nil)

	_, err := service.Confirm(context.Background(), ConfirmRequest{PaymentIntentID: "pi_1"})

	assert.NoError(t, err)
	m.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	m.mailer.AssertNotCalled(t, "SendBookingConfirmed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Confirm_NotSucceeded(t *testing.T) {
	service, m := newPaymentService()

	m.payments.On("GetByIntentID", mock.Anything, "pi_1").
		Return(&domain.PaymentRecord{ID: 601, BookingID: 42, IntentID: "pi_1"}, nil)
	m.gateway.On("GetIntent", mock.Anything, "pi_1").
		Return(&Intent{ID: "pi_1", Status: "requires_payment_method", Raw: "{}"}, nil)
	m.payments.On("UpdateStatus", mock.Anything, "pi_1", domain.PaymentRecordFailed, "{}").Return(nil)

	_, err := service.Confirm(context.Background(), ConfirmRequest{PaymentIntentID: "pi_1"})

	assert.ErrorIs(t, err, ErrNotSucceeded)
	m.bookings.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Confirm_UnknownIntent(t *testing.T) {
	service, m := newPaymentService()

	m.payments.On("GetByIntentID", mock.Anything, "pi_missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Confirm(context.Background(), ConfirmRequest{PaymentIntentID: "pi_missing"})
	assert.ErrorIs(t, err, ErrUnknownIntent)
}
