package repository

import (
	"context"
	"time"

	"carhive/internal/domain"

	"gorm.io/gorm"
)

type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

type agencyModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	OwnerID      int64      `gorm:"column:owner_id"`
	Name         string     `gorm:"column:name"`
	City         string     `gorm:"column:city"`
	Address      *string    `gorm:"column:address"`
	Phone        *string    `gorm:"column:phone"`
	Email        *string    `gorm:"column:email"`
	Description  *string    `gorm:"column:description"`
	LogoURL      *string    `gorm:"column:logo_url"`
	Status       string     `gorm:"column:status"`
	ApprovedAt   *time.Time `gorm:"column:approved_at"`
	ApprovedBy   *int64     `gorm:"column:approved_by"`
	RejectReason *string    `gorm:"column:reject_reason"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (agencyModel) TableName() string { return "agencies" }

func toDomainAgency(m agencyModel) *domain.Agency {
	return &domain.Agency{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		City:         m.City,
		Address:      deref(m.Address),
		Phone:        deref(m.Phone),
		Email:        deref(m.Email),
		Description:  deref(m.Description),
		LogoURL:      deref(m.LogoURL),
		Status:       domain.AgencyStatus(m.Status),
		ApprovedAt:   m.ApprovedAt,
		ApprovedBy:   m.ApprovedBy,
		RejectReason: deref(m.RejectReason),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toAgencyModel(a *domain.Agency) agencyModel {
	return agencyModel{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		Name:         a.Name,
		City:         a.City,
		Address:      ref(a.Address),
		Phone:        ref(a.Phone),
		Email:        ref(a.Email),
		Description:  ref(a.Description),
		LogoURL:      ref(a.LogoURL),
		Status:       string(a.Status),
		ApprovedAt:   a.ApprovedAt,
		ApprovedBy:   a.ApprovedBy,
		RejectReason: ref(a.RejectReason),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *AgencyRepository) Create(ctx context.Context, a *domain.Agency) error {
	m := toAgencyModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAgency(m)
	return nil
}

// CreateWithOwner persists a pending agency together with its owner user and
// links them, all in one transaction.
func (r *AgencyRepository) CreateWithOwner(ctx context.Context, u *domain.User, a *domain.Agency) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		um := toUserModel(u)
		if err := tx.Create(&um).Error; err != nil {
			return err
		}

		am := toAgencyModel(a)
		am.OwnerID = um.ID
		if err := tx.Create(&am).Error; err != nil {
			return err
		}

		if err := tx.Model(&userModel{}).Where("id = ?", um.ID).
			Update("agency_id", am.ID).Error; err != nil {
			return err
		}
		um.AgencyID = &am.ID

		*u = *toDomainUser(um)
		*a = *toDomainAgency(am)
		return nil
	})
}

func (r *AgencyRepository) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	var m agencyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAgency(m), nil
}

func (r *AgencyRepository) Update(ctx context.Context, a *domain.Agency) error {
	m := toAgencyModel(a)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAgency(m)
	return nil
}

func (r *AgencyRepository) ListByStatus(ctx context.Context, status domain.AgencyStatus, limit, offset int) ([]domain.Agency, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&agencyModel{}).Where("status = ?", string(status))
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []agencyModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Agency, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAgency(m))
	}
	return out, total, nil
}

func (r *AgencyRepository) CountByStatus(ctx context.Context, status domain.AgencyStatus) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&agencyModel{}).
		Where("status = ?", string(status)).Count(&cnt).Error
	return cnt, err
}

// ListCreatedBetween feeds the reporting time-series fold.
func (r *AgencyRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Agency, error) {
	var models []agencyModel
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Agency, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAgency(m))
	}
	return out, nil
}


func (r *AgencyRepository) GetNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	type row struct {
		ID   int64
		Name string
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&agencyModel{}).
		Where("id IN ?", ids).
		Select("id", "name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Name
	}
	return out, nil
}

func (r *AgencyRepository) GetCities(ctx context.Context, ids []int64) (map[int64]string, error) {
	type row struct {
		ID   int64
		City string
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&agencyModel{}).
		Where("id IN ?", ids).
		Select("id", "city").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(rows))
	for _, r := range rows {
		out[r.ID] = r.City
	}
	return out, nil
}

func (r *AgencyRepository) CountAll(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&agencyModel{}).Count(&cnt).Error
	return cnt, err
}
