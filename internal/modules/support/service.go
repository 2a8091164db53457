package support

import (
	"context"
	"errors"
	"fmt"

	"carhive/internal/domain"
	"carhive/internal/logger"
	"carhive/internal/notification"

	"gorm.io/gorm"
)

// Broadcaster pushes ticket events to connected clients. The hub
// implements it; a nil broadcaster disables the feed.
type Broadcaster interface {
	BroadcastTicket(ticketID int64, event string, internal bool, payload any)
}

type Service struct {
	tickets SupportRepositoryInterface
	users   UserReader
	mailer  notification.Mailer
	feed    Broadcaster
}

func NewService(tickets SupportRepositoryInterface, users UserReader, mailer notification.Mailer, feed Broadcaster) *Service {
	return &Service{tickets: tickets, users: users, mailer: mailer, feed: feed}
}

func (s *Service) CreateTicket(ctx context.Context, userID int64, req CreateTicketRequest) (*domain.SupportTicket, error) {
	priority := domain.TicketPriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityNormal
	}

	t := &domain.SupportTicket{
		UserID:    userID,
		BookingID: req.BookingID,
		Subject:   req.Subject,
		Status:    domain.TicketOpen,
		Priority:  priority,
	}
	if err := s.tickets.CreateTicket(ctx, t); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	msg := &domain.SupportMessage{
		TicketID: t.ID,
		SenderID: userID,
		Body:     req.Body,
	}
	if err := s.tickets.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create opening message: %w", err)
	}

	t.Messages = []domain.SupportMessage{*msg}
	return t, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, q ListQuery) ([]domain.SupportTicket, error) {
	limit, offset := pageWindow(q.Page, q.Limit)
	tickets, err := s.tickets.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (s *Service) ListAll(ctx context.Context, q ListQuery) ([]domain.SupportTicket, error) {
	limit, offset := pageWindow(q.Page, q.Limit)
	tickets, err := s.tickets.ListAll(ctx, q.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// Get returns the ticket with its thread. Internal messages are only
// included for admins.
func (s *Service) Get(ctx context.Context, ticketID, actorUserID int64, isAdmin bool) (*domain.SupportTicket, error) {
	t, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && t.UserID != actorUserID {
		return nil, ErrForbidden
	}

	messages, err := s.tickets.ListMessages(ctx, ticketID, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	t.Messages = messages
	return t, nil
}

// PostMessage appends to the thread and applies the message-triggered
// status flips: a customer reply reopens a waiting_customer ticket, a
// public admin reply on an open ticket moves it to waiting_customer.
// Internal notes never change status.
func (s *Service) PostMessage(ctx context.Context, ticketID, senderID int64, isAdmin bool, req PostMessageRequest) (*domain.SupportMessage, error) {
	t, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && t.UserID != senderID {
		return nil, ErrForbidden
	}
	if t.Status == domain.TicketClosed {
		return nil, ErrClosed
	}

	internal := req.Internal && isAdmin

	msg := &domain.SupportMessage{
		TicketID: ticketID,
		SenderID: senderID,
		Body:     req.Body,
		Internal: internal,
	}
	if err := s.tickets.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if !internal {
		var next domain.TicketStatus
		switch {
		case !isAdmin && t.Status == domain.TicketWaitingCustomer:
			next = domain.TicketOpen
		case isAdmin && t.Status == domain.TicketOpen:
			next = domain.TicketWaitingCustomer
		}
		if next != "" {
			if err := s.tickets.UpdateTicketStatus(ctx, ticketID, next); err != nil {
				return nil, fmt.Errorf("update ticket status: %w", err)
			}
			s.broadcast(ticketID, "status_changed", false, map[string]any{"status": string(next)})
		}
	}

	s.broadcast(ticketID, "new_message", internal, msg)

	if isAdmin && !internal {
		s.notifyReply(ctx, t)
	}

	return msg, nil
}

func (s *Service) Assign(ctx context.Context, ticketID, adminID int64) (*domain.SupportTicket, error) {
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	if err := s.tickets.AssignTicket(ctx, ticketID, adminID); err != nil {
		return nil, fmt.Errorf("assign ticket: %w", err)
	}
	s.broadcast(ticketID, "status_changed", false, map[string]any{"status": string(domain.TicketInProgress)})
	return s.getTicket(ctx, ticketID)
}

func (s *Service) SetStatus(ctx context.Context, ticketID int64, status domain.TicketStatus) (*domain.SupportTicket, error) {
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	if err := s.tickets.UpdateTicketStatus(ctx, ticketID, status); err != nil {
		return nil, fmt.Errorf("update ticket status: %w", err)
	}
	s.broadcast(ticketID, "status_changed", false, map[string]any{"status": string(status)})
	return s.getTicket(ctx, ticketID)
}

func (s *Service) Delete(ctx context.Context, ticketID int64) error {
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return err
	}
	if err := s.tickets.DeleteTicket(ctx, ticketID); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

func (s *Service) getTicket(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	t, err := s.tickets.GetTicket(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

func (s *Service) broadcast(ticketID int64, event string, internal bool, payload any) {
	if s.feed != nil {
		s.feed.BroadcastTicket(ticketID, event, internal, payload)
	}
}

func (s *Service) notifyReply(ctx context.Context, t *domain.SupportTicket) {
	owner, err := s.users.GetByID(ctx, t.UserID)
	if err != nil {
		logger.L().WithError(err).WithField("ticket_id", t.ID).Warn("support: owner lookup failed for reply email")
		return
	}
	if err := s.mailer.SendSupportReply(ctx, owner.Email, owner.Name, t.ID, t.Subject); err != nil {
		logger.L().WithError(err).WithField("ticket_id", t.ID).Warn("support: reply email failed")
	}
}

func pageWindow(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}
