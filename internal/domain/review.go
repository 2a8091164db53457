package domain

import "time"

type Review struct {
	ID         int64 `json:"id"`
	BookingID  int64 `json:"booking_id"`
	CarID      int64 `json:"car_id"`
	AgencyID   int64 `json:"agency_id"`
	CustomerID int64 `json:"customer_id"`

	Rating      int `json:"rating"`
	Cleanliness int `json:"cleanliness"`
	Service     int `json:"service"`
	Value       int `json:"value"`

	Comment        string     `json:"comment,omitempty"`
	AgencyResponse *string    `json:"agency_response,omitempty"`
	RespondedAt    *time.Time `json:"responded_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ClampRating forces a submitted rating into the accepted 1..5 range.
func ClampRating(r int) int {
	if r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return r
}
