package repository

import (
	"context"
	"time"

	"carhive/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	BookingID      int64      `gorm:"column:booking_id;uniqueIndex:idx_reviews_booking"`
	CarID          int64      `gorm:"column:car_id;index"`
	AgencyID       int64      `gorm:"column:agency_id;index"`
	CustomerID     int64      `gorm:"column:customer_id"`
	Rating         int        `gorm:"column:rating"`
	Cleanliness    int        `gorm:"column:cleanliness"`
	Service        int        `gorm:"column:service"`
	Value          int        `gorm:"column:value"`
	Comment        *string    `gorm:"column:comment"`
	AgencyResponse *string    `gorm:"column:agency_response"`
	RespondedAt    *time.Time `gorm:"column:responded_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:             m.ID,
		BookingID:      m.BookingID,
		CarID:          m.CarID,
		AgencyID:       m.AgencyID,
		CustomerID:     m.CustomerID,
		Rating:         m.Rating,
		Cleanliness:    m.Cleanliness,
		Service:        m.Service,
		Value:          m.Value,
		Comment:        deref(m.Comment),
		AgencyResponse: m.AgencyResponse,
		RespondedAt:    m.RespondedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toReviewModel(rv *domain.Review) reviewModel {
	return reviewModel{
		ID:             rv.ID,
		BookingID:      rv.BookingID,
		CarID:          rv.CarID,
		AgencyID:       rv.AgencyID,
		CustomerID:     rv.CustomerID,
		Rating:         rv.Rating,
		Cleanliness:    rv.Cleanliness,
		Service:        rv.Service,
		Value:          rv.Value,
		Comment:        ref(rv.Comment),
		AgencyResponse: rv.AgencyResponse,
		RespondedAt:    rv.RespondedAt,
		CreatedAt:      rv.CreatedAt,
		UpdatedAt:      rv.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) ExistsByBooking(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("booking_id = ?", bookingID).Count(&cnt).Error
	return cnt > 0, err
}

func (r *ReviewRepository) ListByCar(ctx context.Context, carID int64, limit, offset int) ([]domain.Review, error) {
	var models []reviewModel
	err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainReviews(models), nil
}

func (r *ReviewRepository) ListByAgency(ctx context.Context, agencyID int64, limit, offset int) ([]domain.Review, error) {
	var models []reviewModel
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainReviews(models), nil
}

func toDomainReviews(models []reviewModel) []domain.Review {
	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out
}

func (r *ReviewRepository) AverageByAgency(ctx context.Context, agencyID int64) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("agency_id = ?", agencyID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *ReviewRepository) SetAgencyResponse(ctx context.Context, reviewID int64, resp string) (*domain.Review, error) {
	now := time.Now()
	tx := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("id = ?", reviewID).
		Updates(map[string]any{
			"agency_response": resp,
			"responded_at":    now,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, reviewID)
}
