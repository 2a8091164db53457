package repository

import (
	"context"
	"encoding/json"
	"time"

	"carhive/internal/domain"

	"gorm.io/gorm"
)

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

type carModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	AgencyID     int64     `gorm:"column:agency_id;index"`
	Make         string    `gorm:"column:make"`
	Model        string    `gorm:"column:model"`
	Year         int       `gorm:"column:year"`
	Category     string    `gorm:"column:category;index"`
	LicensePlate *string   `gorm:"column:license_plate"`
	PricePerDay  float64   `gorm:"column:price_per_day"`
	Status       string    `gorm:"column:status"`
	Seats        int       `gorm:"column:seats"`
	Transmission *string   `gorm:"column:transmission"`
	FuelType     *string   `gorm:"column:fuel_type"`
	Specs        *string   `gorm:"column:specs;type:json"`
	Features     *string   `gorm:"column:features;type:json"`
	Images       *string   `gorm:"column:images;type:json"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (carModel) TableName() string { return "cars" }

func toDomainCar(m carModel) *domain.Car {
	c := &domain.Car{
		ID:           m.ID,
		AgencyID:     m.AgencyID,
		Make:         m.Make,
		Model:        m.Model,
		Year:         m.Year,
		Category:     domain.CarCategory(m.Category),
		LicensePlate: deref(m.LicensePlate),
		PricePerDay:  m.PricePerDay,
		Status:       domain.CarStatus(m.Status),
		Seats:        m.Seats,
		Transmission: deref(m.Transmission),
		FuelType:     deref(m.FuelType),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Specs != nil {
		c.Specs = json.RawMessage(*m.Specs)
	}
	if m.Features != nil {
		_ = json.Unmarshal([]byte(*m.Features), &c.Features)
	}
	if m.Images != nil {
		_ = json.Unmarshal([]byte(*m.Images), &c.Images)
	}
	return c
}

func toCarModel(c *domain.Car) carModel {
	m := carModel{
		ID:           c.ID,
		AgencyID:     c.AgencyID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		Category:     string(c.Category),
		LicensePlate: ref(c.LicensePlate),
		PricePerDay:  c.PricePerDay,
		Status:       string(c.Status),
		Seats:        c.Seats,
		Transmission: ref(c.Transmission),
		FuelType:     ref(c.FuelType),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if len(c.Specs) > 0 {
		v := string(c.Specs)
		m.Specs = &v
	}
	if c.Features != nil {
		b, _ := json.Marshal(c.Features)
		v := string(b)
		m.Features = &v
	}
	if c.Images != nil {
		b, _ := json.Marshal(c.Images)
		v := string(b)
		m.Images = &v
	}
	return m
}

func (r *CarRepository) Create(ctx context.Context, c *domain.Car) error {
	m := toCarModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCar(m)
	return nil
}

func (r *CarRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	var m carModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCar(m), nil
}

func (r *CarRepository) Update(ctx context.Context, c *domain.Car) error {
	m := toCarModel(c)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCar(m)
	return nil
}

func (r *CarRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&carModel{}, id).Error
}

// CarFilter narrows the public catalog search.
type CarFilter struct {
	City      string
	Category  string
	AgencyID  int64
	PriceMin  float64
	PriceMax  float64
	Status    string
	Limit     int
	Offset    int
}

func (r *CarRepository) Search(ctx context.Context, f CarFilter) ([]domain.Car, int64, error) {
	q := r.db.WithContext(ctx).Model(&carModel{})

	if f.City != "" {
		q = q.Joins("JOIN agencies a ON a.id = cars.agency_id").
			Where("a.city = ?", f.City)
	}
	if f.Category != "" {
		q = q.Where("cars.category = ?", f.Category)
	}
	if f.AgencyID > 0 {
		q = q.Where("cars.agency_id = ?", f.AgencyID)
	}
	if f.PriceMin > 0 {
		q = q.Where("cars.price_per_day >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("cars.price_per_day <= ?", f.PriceMax)
	}
	if f.Status != "" {
		q = q.Where("cars.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []carModel
	if err := q.Order("cars.created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Car, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCar(m))
	}
	return out, total, nil
}

func (r *CarRepository) CountByAgency(ctx context.Context, agencyID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&carModel{}).
		Where("agency_id = ?", agencyID).Count(&cnt).Error
	return cnt, err
}

func (r *CarRepository) CountActive(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&carModel{}).
		Where("status <> ?", string(domain.CarRetired)).Count(&cnt).Error
	return cnt, err
}

// CategoryCount is one row of the category popularity report.
type CategoryCount struct {
	Category string `gorm:"column:category"`
	Count    int64  `gorm:"column:cnt"`
}

func (r *CarRepository) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&carModel{}).
		Select("category, COUNT(1) AS cnt").
		Group("category").
		Order("cnt DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *CarRepository) AppendImages(ctx context.Context, carID int64, urls []string) (*domain.Car, error) {
	car, err := r.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	car.Images = append(car.Images, urls...)
	if err := r.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}
