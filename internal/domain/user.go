package domain

import "time"

type UserRole string

const (
	RoleCustomer    UserRole = "customer"
	RoleAgencyOwner UserRole = "agency_owner"
	RoleAgencyStaff UserRole = "agency_staff"
	RoleAdmin       UserRole = "admin"
)

func (r UserRole) IsAgency() bool {
	return r == RoleAgencyOwner || r == RoleAgencyStaff
}

type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email" validate:"required,email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AgencyID     *int64   `json:"agency_id,omitempty"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone,omitempty"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
	IsActive     bool     `json:"is_active"`

	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	ResetToken     string     `json:"-"`
	ResetTokenExp  *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
