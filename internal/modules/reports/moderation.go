package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carhive/internal/domain"
	"carhive/internal/logger"
	"carhive/internal/notification"

	"gorm.io/gorm"
)

// ModerationService handles admin review of agency applications.
type ModerationService struct {
	agencies AgencyReportSource
	users    UserReportSource
	mailer   notification.Mailer
}

func NewModerationService(agencies AgencyReportSource, users UserReportSource, mailer notification.Mailer) *ModerationService {
	return &ModerationService{agencies: agencies, users: users, mailer: mailer}
}

func (s *ModerationService) ListPending(ctx context.Context, page, limit int) ([]domain.Agency, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	agencies, total, err := s.agencies.ListByStatus(ctx, domain.AgencyPending, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending agencies: %w", err)
	}
	return agencies, total, nil
}

func (s *ModerationService) Approve(ctx context.Context, adminID, agencyID int64) (*domain.Agency, error) {
	a, err := s.getAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	a.Status = domain.AgencyApproved
	a.ApprovedAt = &now
	a.ApprovedBy = &adminID
	a.RejectReason = ""

	if err := s.agencies.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("approve agency: %w", err)
	}

	if owner, err := s.users.GetByID(ctx, a.OwnerID); err == nil {
		if err := s.mailer.SendAgencyApproved(ctx, owner.Email, a.Name); err != nil {
			logger.L().WithError(err).WithField("agency_id", a.ID).Warn("moderation: approval email failed")
		}
	}

	return a, nil
}

func (s *ModerationService) Reject(ctx context.Context, adminID, agencyID int64, reason string) (*domain.Agency, error) {
	a, err := s.getAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	a.Status = domain.AgencyRejected
	a.ApprovedAt = nil
	a.ApprovedBy = &adminID
	a.RejectReason = reason

	if err := s.agencies.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("reject agency: %w", err)
	}

	if owner, err := s.users.GetByID(ctx, a.OwnerID); err == nil {
		if err := s.mailer.SendAgencyRejected(ctx, owner.Email, a.Name, reason); err != nil {
			logger.L().WithError(err).WithField("agency_id", a.ID).Warn("moderation: rejection email failed")
		}
	}

	return a, nil
}

func (s *ModerationService) getAgency(ctx context.Context, id int64) (*domain.Agency, error) {
	a, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get agency: %w", err)
	}
	return a, nil
}
