package catalog

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

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	cars := api.Group("/cars")
	{
		cars.GET("", h.Search)
		cars.GET("/:id", h.GetByID)
	}
}

func (h *Handler) RegisterAgencyRoutes(agency *gin.RouterGroup) {
	cars := agency.Group("/cars")
	{
		cars.POST("", h.Create)
		cars.PUT("/:id", h.Update)
		cars.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	cars, total, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to search cars")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"cars":  cars,
		"total": total,
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid car id")
		return
	}

	car, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Car not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch car")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"car": car})
}

func (h *Handler) Create(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")
	if agencyID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No agency linked to this account")
		return
	}

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	car, err := h.service.Create(c.Request.Context(), agencyID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create car")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"car": car})
}

func (h *Handler) Update(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid car id")
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	car, err := h.service.Update(c.Request.Context(), id, agencyID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Car not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own cars")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field values")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update car")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"car": car})
}

func (h *Handler) Delete(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid car id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, agencyID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Car not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own cars")
		case errors.Is(err, ErrHasActiveBookings):
			response.Error(c, http.StatusConflict, "ACTIVE_BOOKINGS", "Car has active bookings and cannot be deleted")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete car")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Car deleted"})
}
