package repository

import (
	"context"
	"strings"
	"time"

	"carhive/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	Email         string     `gorm:"column:email;uniqueIndex"`
	PasswordHash  string     `gorm:"column:password_hash"`
	Role          string     `gorm:"column:role"`
	AgencyID      *int64     `gorm:"column:agency_id"`
	Name          string     `gorm:"column:name"`
	Phone         *string    `gorm:"column:phone"`
	AvatarURL     *string    `gorm:"column:avatar_url"`
	IsActive      bool       `gorm:"column:is_active;default:true"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
	ResetToken    *string    `gorm:"column:reset_token"`
	ResetTokenExp *time.Time `gorm:"column:reset_token_exp"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var phone, avatar, resetToken string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.AvatarURL != nil {
		avatar = *m.AvatarURL
	}
	if m.ResetToken != nil {
		resetToken = *m.ResetToken
	}

	return &domain.User{
		ID:            m.ID,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Role:          domain.UserRole(m.Role),
		AgencyID:      m.AgencyID,
		Name:          m.Name,
		Phone:         phone,
		AvatarURL:     avatar,
		IsActive:      m.IsActive,
		LastLoginAt:   m.LastLoginAt,
		ResetToken:    resetToken,
		ResetTokenExp: m.ResetTokenExp,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone, avatar, resetToken *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	if u.AvatarURL != "" {
		v := u.AvatarURL
		avatar = &v
	}
	if u.ResetToken != "" {
		v := u.ResetToken
		resetToken = &v
	}

	return userModel{
		ID:            u.ID,
		Email:         email,
		PasswordHash:  u.PasswordHash,
		Role:          string(u.Role),
		AgencyID:      u.AgencyID,
		Name:          u.Name,
		Phone:         phone,
		AvatarURL:     avatar,
		IsActive:      u.IsActive,
		LastLoginAt:   u.LastLoginAt,
		ResetToken:    resetToken,
		ResetTokenExp: u.ResetTokenExp,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"reset_token":     token,
		"reset_token_exp": expiresAt,
	}).Error
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"reset_token":     nil,
		"reset_token_exp": nil,
	}).Error
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).
		Update("last_login_at", at).Error
}

func (r *UserRepository) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("reset_token IS NOT NULL AND reset_token_exp < ?", now).
		Updates(map[string]any{"reset_token": nil, "reset_token_exp": nil})
	return tx.RowsAffected, tx.Error
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Count(&cnt).Error
	return cnt, err
}
