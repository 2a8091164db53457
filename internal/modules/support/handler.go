package support

import (
	"errors"
	"net/http"
	"strconv"

	"carhive/internal/domain"
	"carhive/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	tickets := protected.Group("/support/tickets")
	{
		tickets.POST("", h.CreateTicket)
		tickets.GET("", h.ListMine)
		tickets.GET("/:id", h.GetTicket)
		tickets.POST("/:id/messages", h.PostMessage)
	}
	protected.GET("/support/ws", h.Feed)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	tickets := admin.Group("/support/tickets")
	{
		tickets.GET("", h.ListAll)
		tickets.PUT("/:id/assign", h.Assign)
		tickets.PUT("/:id/status", h.SetStatus)
		tickets.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Subject and body are required")
		return
	}

	t, err := h.service.CreateTicket(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create ticket")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"ticket": t})
}

func (h *Handler) ListMine(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	tickets, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch tickets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tickets": tickets})
}

func (h *Handler) ListAll(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	tickets, err := h.service.ListAll(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch tickets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tickets": tickets})
}

func (h *Handler) GetTicket(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), isAdmin(c))
	if err != nil {
		h.writeTicketError(c, err, "Failed to fetch ticket")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) PostMessage(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message body is required")
		return
	}

	msg, err := h.service.PostMessage(c.Request.Context(), id, c.GetInt64("user_id"), isAdmin(c), req)
	if err != nil {
		if errors.Is(err, ErrClosed) {
			response.Error(c, http.StatusConflict, "TICKET_CLOSED", "Ticket is closed")
			return
		}
		h.writeTicketError(c, err, "Failed to post message")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) Assign(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	t, err := h.service.Assign(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeTicketError(c, err, "Failed to assign ticket")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid or missing status")
		return
	}

	t, err := h.service.SetStatus(c.Request.Context(), id, domain.TicketStatus(req.Status))
	if err != nil {
		h.writeTicketError(c, err, "Failed to update ticket status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeTicketError(c, err, "Failed to delete ticket")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Feed upgrades to a websocket carrying live ticket events.
func (h *Handler) Feed(c *gin.Context) {
	role := domain.UserRole(c.GetString("role"))
	if err := h.hub.ServeWS(c.Writer, c.Request, c.GetInt64("user_id"), role); err != nil {
		response.Error(c, http.StatusBadRequest, "UPGRADE_FAILED", "WebSocket upgrade failed")
	}
}

func (h *Handler) writeTicketError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		response.Error(c, http.StatusInternalServerError, "REQUEST_FAILED", fallback)
	}
}

func isAdmin(c *gin.Context) bool {
	return domain.UserRole(c.GetString("role")) == domain.RoleAdmin
}

func ticketID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ticket id")
		return 0, false
	}
	return id, true
}
