package reports

type ReportQuery struct {
	Type    string `form:"type" binding:"omitempty,oneof=summary series top_agencies cities statuses categories"`
	Period  string `form:"period" binding:"omitempty,oneof=7d 30d 90d year"`
	From    string `form:"from"`
	To      string `form:"to"`
	GroupBy string `form:"groupBy" binding:"omitempty,oneof=day week month"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type FinancialSummary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	Commission       float64 `json:"commission"`
	NetPayout        float64 `json:"net_payout"`
	BookingCount     int64   `json:"booking_count"`
	CompletionRate   float64 `json:"completion_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	ActiveAgencies   int64   `json:"active_agencies"`
	ActiveCars       int64   `json:"active_cars"`
}

type SeriesBucket struct {
	Key         string  `json:"key"`
	Bookings    int64   `json:"bookings"`
	Revenue     float64 `json:"revenue"`
	NewAgencies int64   `json:"new_agencies"`
}

type AgencyRevenue struct {
	AgencyID int64   `json:"agency_id"`
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Bookings int64   `json:"bookings"`
}

type CityRevenue struct {
	City     string  `json:"city"`
	Revenue  float64 `json:"revenue"`
	Bookings int64   `json:"bookings"`
}

type StatusShare struct {
	Status     string  `json:"status"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type CategoryShare struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type PlatformStats struct {
	TotalUsers      int64   `json:"total_users"`
	TotalAgencies   int64   `json:"total_agencies"`
	PendingAgencies int64   `json:"pending_agencies"`
	ActiveCars      int64   `json:"active_cars"`
	TotalBookings   int64   `json:"total_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCommission float64 `json:"total_commission"`
}

type RejectAgencyRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type PendingAgenciesQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
