package upload

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

func (h *Handler) RegisterRoutes(agency *gin.RouterGroup) {
	agency.POST("/cars/:id/images", h.UploadCarImages)
}

func (h *Handler) UploadCarImages(c *gin.Context) {
	carID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid car id")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Multipart form expected")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one image is required")
		return
	}

	car, err := h.service.UploadCarImages(c.Request.Context(), c.GetInt64("agency_id"), carID, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Car not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Car belongs to another agency")
		case errors.Is(err, ErrBadImage):
			response.Error(c, http.StatusBadRequest, "BAD_IMAGE", "Unsupported or oversized image")
		case errors.Is(err, ErrStoreFailure):
			response.Error(c, http.StatusBadGateway, "STORAGE_ERROR", "Object storage is unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload images")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"car": car})
}
