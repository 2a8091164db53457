package domain

import "time"

type TicketStatus string

const (
	TicketOpen            TicketStatus = "open"
	TicketInProgress      TicketStatus = "in_progress"
	TicketWaitingCustomer TicketStatus = "waiting_customer"
	TicketResolved        TicketStatus = "resolved"
	TicketClosed          TicketStatus = "closed"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
)

type SupportTicket struct {
	ID         int64          `json:"id"`
	UserID     int64          `json:"user_id"`
	BookingID  *int64         `json:"booking_id,omitempty"`
	AssignedTo *int64         `json:"assigned_to,omitempty"`
	Subject    string         `json:"subject" validate:"required"`
	Status     TicketStatus   `json:"status"`
	Priority   TicketPriority `json:"priority"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	Messages []SupportMessage `json:"messages,omitempty"`
}

type SupportMessage struct {
	ID       int64  `json:"id"`
	TicketID int64  `json:"ticket_id"`
	SenderID int64  `json:"sender_id"`
	Body     string `json:"body" validate:"required"`

	// Internal messages are visible to admins only.
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at"`
}
