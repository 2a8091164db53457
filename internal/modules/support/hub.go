package support

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"carhive/internal/domain"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// TicketEvent is a real-time event pushed to subscribers of a ticket.
type TicketEvent struct {
	Type     string `json:"type"`
	TicketID int64  `json:"ticket_id"`
	Payload  any    `json:"payload,omitempty"`
}

type connection struct {
	userID  int64
	isAdmin bool
	conn    *websocket.Conn
	send    chan []byte
	tickets map[int64]bool
}

// TicketReader resolves tickets so the hub can check who may subscribe.
type TicketReader interface {
	GetTicket(ctx context.Context, id int64) (*domain.SupportTicket, error)
}

// Hub manages all active ticket-feed connections.
type Hub struct {
	tickets     TicketReader
	mu          sync.RWMutex
	connections map[int64]*connection
}

func NewHub(tickets TicketReader) *Hub {
	return &Hub{
		tickets:     tickets,
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// BroadcastTicket sends an event to every subscriber of the ticket.
// Internal events only reach admin connections.
func (h *Hub) BroadcastTicket(ticketID int64, event string, internal bool, payload any) {
	data, err := json.Marshal(&TicketEvent{Type: event, TicketID: ticketID, Payload: payload})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if !c.tickets[ticketID] {
			continue
		}
		if internal && !c.isAdmin {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client too slow, skip
		}
	}
}

// ServeWS upgrades the request and runs the connection until disconnect.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int64, role domain.UserRole) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		userID:  userID,
		isAdmin: role == domain.RoleAdmin,
		conn:    conn,
		send:    make(chan []byte, 256),
		tickets: make(map[int64]bool),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
	return nil
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event struct {
			Type     string `json:"type"`
			TicketID int64  `json:"ticket_id"`
		}
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		switch event.Type {
		case "subscribe":
			h.subscribe(c, event.TicketID)
		case "unsubscribe":
			h.mu.Lock()
			delete(c.tickets, event.TicketID)
			h.mu.Unlock()
		}
	}
}

// subscribe attaches the connection to a ticket feed. Admins may follow
// any ticket; everyone else only their own.
func (h *Hub) subscribe(c *connection, ticketID int64) {
	if !h.canSubscribe(c, ticketID) {
		return
	}
	h.mu.Lock()
	c.tickets[ticketID] = true
	h.mu.Unlock()
}

func (h *Hub) canSubscribe(c *connection, ticketID int64) bool {
	if c.isAdmin {
		return true
	}
	t, err := h.tickets.GetTicket(context.Background(), ticketID)
	if err != nil {
		return false
	}
	return t.UserID == c.userID
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, c := range h.connections {
		_ = c.conn.Close()
		delete(h.connections, userID)
	}
}
