package repository

import (
	"context"
	"time"

	"carhive/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	CarID           int64      `gorm:"column:car_id;index"`
	AgencyID        int64      `gorm:"column:agency_id;index"`
	CustomerID      *int64     `gorm:"column:customer_id;index"`
	GuestName       *string    `gorm:"column:guest_name"`
	GuestEmail      *string    `gorm:"column:guest_email"`
	GuestPhone      *string    `gorm:"column:guest_phone"`
	PickupDate      time.Time  `gorm:"column:pickup_date"`
	ReturnDate      time.Time  `gorm:"column:return_date"`
	TotalPrice      float64    `gorm:"column:total_price"`
	Status          string     `gorm:"column:status;index"`
	PaymentStatus   string     `gorm:"column:payment_status"`
	PaymentIntentID *string    `gorm:"column:payment_intent_id"`
	Notes           *string    `gorm:"column:notes"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		CarID:           m.CarID,
		AgencyID:        m.AgencyID,
		CustomerID:      m.CustomerID,
		GuestName:       deref(m.GuestName),
		GuestEmail:      deref(m.GuestEmail),
		GuestPhone:      deref(m.GuestPhone),
		PickupDate:      m.PickupDate,
		ReturnDate:      m.ReturnDate,
		TotalPrice:      m.TotalPrice,
		Status:          domain.BookingStatus(m.Status),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		PaymentIntentID: deref(m.PaymentIntentID),
		Notes:           deref(m.Notes),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CancelledAt:     m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		CarID:           b.CarID,
		AgencyID:        b.AgencyID,
		CustomerID:      b.CustomerID,
		GuestName:       ref(b.GuestName),
		GuestEmail:      ref(b.GuestEmail),
		GuestPhone:      ref(b.GuestPhone),
		PickupDate:      b.PickupDate,
		ReturnDate:      b.ReturnDate,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentIntentID: ref(b.PaymentIntentID),
		Notes:           ref(b.Notes),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) ListByAgency(ctx context.Context, agencyID int64, status string, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Where("agency_id = ?", agencyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var models []bookingModel
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	updates := map[string]any{"status": string(status)}
	if status == domain.BookingCancelled {
		now := time.Now()
		updates["cancelled_at"] = now
	}
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", bookingID).Updates(updates).Error
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error) {
	if err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("payment_status", string(status)).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, bookingID)
}

func (r *BookingRepository) SetPaymentIntent(ctx context.Context, bookingID int64, intentID string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("payment_intent_id", intentID).Error
}

// CountActiveByCar counts bookings still holding the car. Used to block
// car deletion.
func (r *BookingRepository) CountActiveByCar(ctx context.Context, carID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("car_id = ? AND status IN ?", carID, []string{
			string(domain.BookingPending),
			string(domain.BookingConfirmed),
			string(domain.BookingInProgress),
		}).
		Count(&cnt).Error
	return cnt, err
}

func (r *BookingRepository) CountByAgencyAndStatus(ctx context.Context, agencyID int64, statuses ...domain.BookingStatus) (int64, error) {
	ss := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ss = append(ss, string(s))
	}
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("agency_id = ? AND status IN ?", agencyID, ss).
		Count(&cnt).Error
	return cnt, err
}

// SumRevenueByAgency sums total_price over confirmed and completed bookings.
func (r *BookingRepository) SumRevenueByAgency(ctx context.Context, agencyID int64) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("agency_id = ? AND status IN ?", agencyID, []string{
			string(domain.BookingConfirmed),
			string(domain.BookingCompleted),
		}).
		Select("SUM(total_price)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

// ListCreatedBetween pulls the raw rows the reporting service folds in memory.
func (r *BookingRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) CountAll(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt).Error
	return cnt, err
}

// SumRevenueAll sums total_price over confirmed and completed bookings
// across every agency.
func (r *BookingRepository) SumRevenueAll(ctx context.Context) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status IN ?", []string{
			string(domain.BookingConfirmed),
			string(domain.BookingCompleted),
		}).
		Select("SUM(total_price)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}
