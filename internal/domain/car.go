package domain

import (
	"encoding/json"
	"time"
)

type CarStatus string

const (
	CarAvailable   CarStatus = "available"
	CarRented      CarStatus = "rented"
	CarMaintenance CarStatus = "maintenance"
	CarRetired     CarStatus = "retired"
)

type CarCategory string

const (
	CategoryEconomy CarCategory = "economy"
	CategoryCompact CarCategory = "compact"
	CategorySUV     CarCategory = "suv"
	CategoryLuxury  CarCategory = "luxury"
	CategoryVan     CarCategory = "van"
)

type Car struct {
	ID           int64       `json:"id"`
	AgencyID     int64       `json:"agency_id"`
	Make         string      `json:"make" validate:"required"`
	Model        string      `json:"model" validate:"required"`
	Year         int         `json:"year" validate:"required,gte=1980"`
	Category     CarCategory `json:"category"`
	LicensePlate string      `json:"license_plate,omitempty"`
	PricePerDay  float64     `json:"price_per_day" validate:"required,gt=0"`
	Status       CarStatus   `json:"status"`
	Seats        int         `json:"seats,omitempty"`
	Transmission string      `json:"transmission,omitempty"`
	FuelType     string      `json:"fuel_type,omitempty"`

	// Free-form JSON blobs, stored as-is
	Specs    json.RawMessage `json:"specs,omitempty"`
	Features []string        `json:"features,omitempty"`
	Images   []string        `json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
