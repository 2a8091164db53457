package catalog

import "encoding/json"

type CreateCarRequest struct {
	Make         string          `json:"make" binding:"required"`
	Model        string          `json:"model" binding:"required"`
	Year         int             `json:"year" binding:"required,gte=1980"`
	Category     string          `json:"category" binding:"required"`
	LicensePlate string          `json:"license_plate"`
	PricePerDay  float64         `json:"price_per_day" binding:"required,gt=0"`
	Seats        int             `json:"seats"`
	Transmission string          `json:"transmission"`
	FuelType     string          `json:"fuel_type"`
	Specs        json.RawMessage `json:"specs"`
	Features     []string        `json:"features"`
	Images       []string        `json:"images"`
}

type UpdateCarRequest struct {
	Make         *string          `json:"make"`
	Model        *string          `json:"model"`
	Year         *int             `json:"year"`
	Category     *string          `json:"category"`
	LicensePlate *string          `json:"license_plate"`
	PricePerDay  *float64         `json:"price_per_day"`
	Status       *string          `json:"status"`
	Seats        *int             `json:"seats"`
	Transmission *string          `json:"transmission"`
	FuelType     *string          `json:"fuel_type"`
	Specs        *json.RawMessage `json:"specs"`
	Features     *[]string        `json:"features"`
	Images       *[]string        `json:"images"`
}

type SearchQuery struct {
	City     string  `form:"city"`
	Category string  `form:"category"`
	AgencyID int64   `form:"agency_id"`
	PriceMin float64 `form:"price_min"`
	PriceMax float64 `form:"price_max"`
	Status   string  `form:"status"`
	Page     int     `form:"page"`
	Limit    int     `form:"limit"`
}
