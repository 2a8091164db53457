package geo

import (
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

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	geo := api.Group("/geo")
	{
		geo.GET("/autocomplete", h.Autocomplete)
		geo.GET("/directions", h.Directions)
	}
}

func (h *Handler) Autocomplete(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "input is required")
		return
	}

	suggestions, err := h.service.Autocomplete(c.Request.Context(), input)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "PROVIDER_ERROR", "Autocomplete lookup failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *Handler) Directions(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "origin and destination are required")
		return
	}

	routes, err := h.service.Directions(c.Request.Context(), origin, destination)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "PROVIDER_ERROR", "Directions lookup failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"routes": routes})
}
