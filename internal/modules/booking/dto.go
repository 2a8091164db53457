package booking

type CreateBookingRequest struct {
	CarID      int64  `json:"car_id" binding:"required"`
	PickupDate string `json:"pickup_date" binding:"required"` // 2006-01-02
	ReturnDate string `json:"return_date" binding:"required"`
	Notes      string `json:"notes"`

	// Guest checkout fields, required when the request carries no token
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
}

type ListQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
