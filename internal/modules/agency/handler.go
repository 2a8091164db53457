package agency

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
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the agency console endpoints. The group is
// expected to carry Auth plus the agency role check.
func (h *Handler) RegisterRoutes(agency *gin.RouterGroup) {
	agency.GET("/profile", h.GetProfile)
	agency.PUT("/profile", h.UpdateProfile)
	agency.GET("/stats", h.GetStats)
	agency.GET("/bookings", h.GetBookings)
	agency.PUT("/bookings/:id/status", h.UpdateBookingStatus)
}

func (h *Handler) GetProfile(c *gin.Context) {
	a, err := h.service.GetProfile(c.Request.Context(), c.GetInt64("agency_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agency not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch agency")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agency": a})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("agency_id"), req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agency not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update agency")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agency": a})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetDashboardStats(c.Request.Context(), c.GetInt64("agency_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch dashboard stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) GetBookings(c *gin.Context) {
	var q BookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	bookings, err := h.service.GetBookings(c.Request.Context(), c.GetInt64("agency_id"), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid or missing status")
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), c.GetInt64("agency_id"), id, domain.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Booking belongs to another agency")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update booking status")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
