package repository

import (
	"context"
	"time"

	"carhive/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	BookingID   int64      `gorm:"column:booking_id;index"`
	IntentID    string     `gorm:"column:intent_id;uniqueIndex"`
	CustomerRef *string    `gorm:"column:customer_ref"`
	Amount      int64      `gorm:"column:amount"`
	Currency    string     `gorm:"column:currency"`
	Status      string     `gorm:"column:status"`
	RawPayload  *string    `gorm:"column:raw_payload"`
	PaidAt      *time.Time `gorm:"column:paid_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payment_records" }

func toDomainPayment(m paymentModel) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		ID:          m.ID,
		BookingID:   m.BookingID,
		IntentID:    m.IntentID,
		CustomerRef: deref(m.CustomerRef),
		Amount:      m.Amount,
		Currency:    m.Currency,
		Status:      domain.PaymentRecordStatus(m.Status),
		RawPayload:  deref(m.RawPayload),
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.PaymentRecord) error {
	m := paymentModel{
		BookingID:   p.BookingID,
		IntentID:    p.IntentID,
		CustomerRef: ref(p.CustomerRef),
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      string(p.Status),
		RawPayload:  ref(p.RawPayload),
		PaidAt:      p.PaidAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.PaymentRecord, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).Where("intent_id = ?", intentID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

// MarkSucceededIdempotent flips the record to succeeded once. Returns false
// when the record was already succeeded, so repeated confirm calls are no-ops.
func (r *PaymentRepository) MarkSucceededIdempotent(ctx context.Context, intentID, rawPayload string, paidAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("intent_id = ? AND status <> ?", intentID, string(domain.PaymentRecordSucceeded)).
		Updates(map[string]any{
			"status":      string(domain.PaymentRecordSucceeded),
			"raw_payload": rawPayload,
			"paid_at":     paidAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, intentID string, status domain.PaymentRecordStatus, rawPayload string) error {
	return r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("intent_id = ?", intentID).
		Updates(map[string]any{
			"status":      string(status),
			"raw_payload": rawPayload,
		}).Error
}
