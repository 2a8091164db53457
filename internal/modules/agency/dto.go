package agency

type UpdateProfileRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=300"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,url"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled"`
}

type BookingsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type DashboardStats struct {
	TotalCars         int64   `json:"total_cars"`
	PendingBookings   int64   `json:"pending_bookings"`
	ActiveBookings    int64   `json:"active_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageRating     float64 `json:"average_rating"`
}
