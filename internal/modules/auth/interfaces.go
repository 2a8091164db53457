package auth

import (
	"context"
	"time"

	"carhive/internal/domain"
)

// UserRepositoryInterface lists only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	ClearResetToken(ctx context.Context, userID int64) error
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// AgencyRegistrar is the slice of the agency repository registration needs
type AgencyRegistrar interface {
	CreateWithOwner(ctx context.Context, u *domain.User, a *domain.Agency) error
}
