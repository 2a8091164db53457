package review

import (
	"errors"
	"net/http"
	"strconv"

	"carhive/internal/middleware"
	"carhive/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/cars/:id/reviews", h.ListByCar)
	api.GET("/agencies/:id/reviews", h.ListByAgency)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/reviews", middleware.CustomerOnly(), h.Create)
}

func (h *Handler) RegisterAgencyRoutes(agency *gin.RouterGroup) {
	agency.POST("/reviews/:id/respond", h.Respond)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotYourBooking):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only review your own bookings")
		case errors.Is(err, ErrNotCompleted):
			response.Error(c, http.StatusBadRequest, "NOT_COMPLETED", "Only completed bookings can be reviewed")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "Booking already has a review")
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create review")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) ListByCar(c *gin.Context) {
	carID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid car id")
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	reviews, err := h.service.ListByCar(c.Request.Context(), carID, q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch reviews")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) ListByAgency(c *gin.Context) {
	agencyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid agency id")
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	reviews, avg, err := h.service.ListByAgency(c.Request.Context(), agencyID, q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch reviews")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews, "average_rating": avg})
}

func (h *Handler) Respond(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review id")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Response text is required")
		return
	}

	rv, err := h.service.Respond(c.Request.Context(), c.GetInt64("agency_id"), reviewID, req.Response)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Review belongs to another agency")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to save response")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review": rv})
}
