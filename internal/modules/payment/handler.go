package payment

import (
	"errors"
	"net/http"

	"carhive/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the payment endpoints behind OptionalAuth so
// guest bookings can be paid without an account.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	payments := api.Group("/payments")
	{
		payments.POST("/create-intent", h.CreateIntent)
		payments.POST("/confirm", h.Confirm)
	}
}

func (h *Handler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking_id is required")
		return
	}

	var actor *int64
	if v, ok := c.Get("user_id"); ok {
		id := v.(int64)
		actor = &id
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only pay for your own bookings")
		case errors.Is(err, ErrAlreadyPaid):
			response.Error(c, http.StatusConflict, "ALREADY_PAID", "Booking is already paid")
		case errors.Is(err, ErrProviderFailure):
			response.Error(c, http.StatusBadGateway, "PROVIDER_ERROR", "Payment provider is unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create payment intent")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": intent})
}

func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "payment_intent_id is required")
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownIntent):
			response.Error(c, http.StatusNotFound, "UNKNOWN_INTENT", "Payment intent not found")
		case errors.Is(err, ErrNotSucceeded):
			response.Error(c, http.StatusBadRequest, "NOT_SUCCEEDED", "Payment has not succeeded")
		case errors.Is(err, ErrProviderFailure):
			response.Error(c, http.StatusBadGateway, "PROVIDER_ERROR", "Payment provider is unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "CONFIRM_FAILED", "Failed to confirm payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
