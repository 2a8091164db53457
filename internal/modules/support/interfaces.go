package support

import (
	"context"

	"carhive/internal/domain"
)

type SupportRepositoryInterface interface {
	CreateTicket(ctx context.Context, t *domain.SupportTicket) error
	GetTicket(ctx context.Context, id int64) (*domain.SupportTicket, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.SupportTicket, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]domain.SupportTicket, error)
	UpdateTicketStatus(ctx context.Context, ticketID int64, status domain.TicketStatus) error
	AssignTicket(ctx context.Context, ticketID, adminID int64) error
	DeleteTicket(ctx context.Context, ticketID int64) error
	CreateMessage(ctx context.Context, m *domain.SupportMessage) error
	ListMessages(ctx context.Context, ticketID int64, includeInternal bool) ([]domain.SupportMessage, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
