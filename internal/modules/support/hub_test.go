package support

import (
	"context"
	"testing"

	"carhive/internal/domain"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubTicketReader struct {
	tickets map[int64]*domain.SupportTicket
}

func (s *stubTicketReader) GetTicket(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	t, ok := s.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func newFeedConn(userID int64, isAdmin bool) *connection {
	return &connection{
		userID:  userID,
		isAdmin: isAdmin,
		send:    make(chan []byte, 4),
		tickets: make(map[int64]bool),
	}
}

func TestHub_Subscribe_OwnerAndAdminOnly(t *testing.T) {
	hub := NewHub(&stubTicketReader{tickets: map[int64]*domain.SupportTicket{
		1: {ID: 1, UserID: 9},
	}})

	owner := newFeedConn(9, false)
	stranger := newFeedConn(99, false)
	admin := newFeedConn(1, true)

	hub.subscribe(owner, 1)
	hub.subscribe(stranger, 1)
	hub.subscribe(admin, 1)

	assert.True(t, owner.tickets[1], "ticket owner")
	assert.False(t, stranger.tickets[1], "foreign customer")
	assert.True(t, admin.tickets[1], "admin")
}

func TestHub_Subscribe_UnknownTicket(t *testing.T) {
	hub := NewHub(&stubTicketReader{tickets: map[int64]*domain.SupportTicket{}})

	c := newFeedConn(9, false)
	hub.subscribe(c, 404)

	assert.Empty(t, c.tickets)
}

func TestHub_Broadcast_SkipsUnsubscribed(t *testing.T) {
	hub := NewHub(&stubTicketReader{tickets: map[int64]*domain.SupportTicket{
		1: {ID: 1, UserID: 9},
	}})

	owner := newFeedConn(9, false)
	stranger := newFeedConn(99, false)
	hub.register(owner)
	hub.register(stranger)

	hub.subscribe(owner, 1)
	hub.subscribe(stranger, 1)

	hub.BroadcastTicket(1, "new_message", false, map[string]any{"body": "hello"})

	assert.Len(t, owner.send, 1)
	assert.Len(t, stranger.send, 0)
}

func TestHub_Broadcast_InternalOnlyReachesAdmins(t *testing.T) {
	hub := NewHub(&stubTicketReader{tickets: map[int64]*domain.SupportTicket{
		1: {ID: 1, UserID: 9},
	}})

	owner := newFeedConn(9, false)
	admin := newFeedConn(1, true)
	hub.register(owner)
	hub.register(admin)

	hub.subscribe(owner, 1)
	hub.subscribe(admin, 1)

	hub.BroadcastTicket(1, "new_message", true, map[string]any{"body": "internal note"})

	assert.Len(t, owner.send, 0)
	assert.Len(t, admin.send, 1)
}
