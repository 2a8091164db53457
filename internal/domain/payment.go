package domain

import "time"

type PaymentRecordStatus string

const (
	PaymentRecordCreated   PaymentRecordStatus = "created"
	PaymentRecordSucceeded PaymentRecordStatus = "succeeded"
	PaymentRecordFailed    PaymentRecordStatus = "failed"
	PaymentRecordRefunded  PaymentRecordStatus = "refunded"
)

// PaymentRecord is the local ledger row kept per provider intent,
// used for reconciliation and idempotent confirmation.
type PaymentRecord struct {
	ID          int64               `json:"id"`
	BookingID   int64               `json:"booking_id"`
	IntentID    string              `json:"intent_id"`
	CustomerRef string              `json:"customer_ref,omitempty"`
	Amount      int64               `json:"amount"` // minor units
	Currency    string              `json:"currency"`
	Status      PaymentRecordStatus `json:"status"`
	RawPayload  string              `json:"-"`
	PaidAt      *time.Time          `json:"paid_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
