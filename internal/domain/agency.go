package domain

import "time"

type AgencyStatus string

const (
	AgencyPending   AgencyStatus = "pending"
	AgencyApproved  AgencyStatus = "approved"
	AgencyRejected  AgencyStatus = "rejected"
	AgencySuspended AgencyStatus = "suspended"
)

type Agency struct {
	ID           int64        `json:"id"`
	OwnerID      int64        `json:"owner_id"`
	Name         string       `json:"name" validate:"required"`
	City         string       `json:"city"`
	Address      string       `json:"address,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Description  string       `json:"description,omitempty"`
	LogoURL      string       `json:"logo_url,omitempty"`
	Status       AgencyStatus `json:"status"`
	ApprovedAt   *time.Time   `json:"approved_at,omitempty"`
	ApprovedBy   *int64       `json:"approved_by,omitempty"`
	RejectReason string       `json:"reject_reason,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
