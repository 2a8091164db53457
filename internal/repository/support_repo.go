package repository

import (
	"context"
	"time"

	"carhive/internal/domain"

	"gorm.io/gorm"
)

type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

type ticketModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;index"`
	BookingID  *int64    `gorm:"column:booking_id"`
	AssignedTo *int64    `gorm:"column:assigned_to"`
	Subject    string    `gorm:"column:subject"`
	Status     string    `gorm:"column:status;index"`
	Priority   string    `gorm:"column:priority"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (ticketModel) TableName() string { return "support_tickets" }

type messageModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	TicketID  int64     `gorm:"column:ticket_id;index"`
	SenderID  int64     `gorm:"column:sender_id"`
	Body      string    `gorm:"column:body"`
	Internal  bool      `gorm:"column:internal"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "support_messages" }

func toDomainTicket(m ticketModel) *domain.SupportTicket {
	return &domain.SupportTicket{
		ID:         m.ID,
		UserID:     m.UserID,
		BookingID:  m.BookingID,
		AssignedTo: m.AssignedTo,
		Subject:    m.Subject,
		Status:     domain.TicketStatus(m.Status),
		Priority:   domain.TicketPriority(m.Priority),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toTicketModel(t *domain.SupportTicket) ticketModel {
	return ticketModel{
		ID:         t.ID,
		UserID:     t.UserID,
		BookingID:  t.BookingID,
		AssignedTo: t.AssignedTo,
		Subject:    t.Subject,
		Status:     string(t.Status),
		Priority:   string(t.Priority),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func toDomainMessage(m messageModel) domain.SupportMessage {
	return domain.SupportMessage{
		ID:        m.ID,
		TicketID:  m.TicketID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		Internal:  m.Internal,
		CreatedAt: m.CreatedAt,
	}
}

func (r *SupportRepository) CreateTicket(ctx context.Context, t *domain.SupportTicket) error {
	m := toTicketModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTicket(m)
	return nil
}

func (r *SupportRepository) GetTicket(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	var m ticketModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTicket(m), nil
}

func (r *SupportRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.SupportTicket, error) {
	var models []ticketModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainTickets(models), nil
}

func (r *SupportRepository) ListAll(ctx context.Context, status string, limit, offset int) ([]domain.SupportTicket, error) {
	q := r.db.WithContext(ctx).Model(&ticketModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var models []ticketModel
	err := q.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainTickets(models), nil
}

func toDomainTickets(models []ticketModel) []domain.SupportTicket {
	out := make([]domain.SupportTicket, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTicket(m))
	}
	return out
}

func (r *SupportRepository) UpdateTicketStatus(ctx context.Context, ticketID int64, status domain.TicketStatus) error {
	return r.db.WithContext(ctx).Model(&ticketModel{}).
		Where("id = ?", ticketID).
		Update("status", string(status)).Error
}

func (r *SupportRepository) AssignTicket(ctx context.Context, ticketID, adminID int64) error {
	return r.db.WithContext(ctx).Model(&ticketModel{}).
		Where("id = ?", ticketID).
		Updates(map[string]any{
			"assigned_to": adminID,
			"status":      string(domain.TicketInProgress),
		}).Error
}

func (r *SupportRepository) DeleteTicket(ctx context.Context, ticketID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", ticketID).Delete(&messageModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ticketModel{}, ticketID).Error
	})
}

func (r *SupportRepository) CreateMessage(ctx context.Context, m *domain.SupportMessage) error {
	row := messageModel{
		TicketID:  m.TicketID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		Internal:  m.Internal,
		CreatedAt: m.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&row)
	if tx.Error != nil {
		return tx.Error
	}
	*m = toDomainMessage(row)
	return nil
}

// ListMessages returns the ticket thread in order. Internal messages are
// dropped unless includeInternal is set.
func (r *SupportRepository) ListMessages(ctx context.Context, ticketID int64, includeInternal bool) ([]domain.SupportMessage, error) {
	q := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID)
	if !includeInternal {
		q = q.Where("internal = ?", false)
	}
	var models []messageModel
	if err := q.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.SupportMessage, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainMessage(m))
	}
	return out, nil
}
