package booking

import (
	"errors"
	"net/http"
	"strconv"

	"carhive/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterGuestRoutes mounts creation behind OptionalAuth so guests can book.
func (h *Handler) RegisterGuestRoutes(api *gin.RouterGroup) {
	api.POST("/bookings", h.Create)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.GET("", h.GetMyBookings)
		bookings.GET("/:id", h.GetByID)
		bookings.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var customerID *int64
	if v, ok := c.Get("user_id"); ok {
		id := v.(int64)
		customerID = &id
	}

	b, err := h.service.Create(c.Request.Context(), customerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking dates or missing guest contact")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Car not found")
		case errors.Is(err, ErrNotAvailable):
			response.Error(c, http.StatusConflict, "NOT_AVAILABLE", "Car is not available")
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	bookings, err := h.service.GetMyBookings(c.Request.Context(), userID, q.Page, q.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id,
		c.GetInt64("user_id"), c.GetString("role"), c.GetInt64("agency_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		default:
			response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only cancel your own bookings")
		case errors.Is(err, ErrNotCancellable):
			response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Booking can no longer be cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, "CANCEL_FAILED", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
