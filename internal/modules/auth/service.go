package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"carhive/internal/domain"
	"carhive/internal/notification"

	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 24 * time.Hour

type jwtService interface {
	GenerateToken(userID int64, email, role string, agencyID *int64) (string, error)
}

// Service contains all business logic for authentication
type Service struct {
	users    UserRepositoryInterface
	agencies AgencyRegistrar
	jwt      jwtService
	mailer   notification.Mailer
	baseURL  string
	log      *logrus.Logger
}

func NewService(users UserRepositoryInterface, agencies AgencyRegistrar, jwt jwtService, mailer notification.Mailer, baseURL string, log *logrus.Logger) *Service {
	return &Service{
		users:    users,
		agencies: agencies,
		jwt:      jwt,
		mailer:   mailer,
		baseURL:  baseURL,
		log:      log,
	}
}

func (s *Service) RegisterCustomer(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, "", err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role), nil)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// RegisterAgencyOwner creates the pending agency and its owner user in one
// transaction.
func (s *Service) RegisterAgencyOwner(ctx context.Context, req RegisterAgencyRequest) (*domain.User, *domain.Agency, string, error) {
	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, nil, "", err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, nil, "", err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.RoleAgencyOwner,
		IsActive:     true,
	}
	agency := &domain.Agency{
		Name:        req.AgencyName,
		City:        req.City,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       user.Email,
		Description: req.Description,
		Status:      domain.AgencyPending,
	}

	if err := s.agencies.CreateWithOwner(ctx, user, agency); err != nil {
		return nil, nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role), user.AgencyID)
	if err != nil {
		return nil, nil, "", err
	}

	user.PasswordHash = ""
	return user, agency, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.WithError(err).Warn("failed to record last login")
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role), user.AgencyID)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ForgotPassword stores a single-use reset token on the user row and emails
// the reset link. It reports success whether or not the account exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	if err := s.users.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if s.mailer != nil {
		link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.baseURL, "/"), token)
		if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, link); err != nil {
			s.log.WithError(err).Error("failed to send password reset email")
		}
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	user, err := s.users.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if user.ResetTokenExp == nil || user.ResetTokenExp.Before(time.Now()) {
		_ = s.users.ClearResetToken(ctx, user.ID)
		return ErrInvalidResetToken
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.users.ClearResetToken(ctx, user.ID)
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
