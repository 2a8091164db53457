package reports

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"carhive/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    *Service
	moderation *ModerationService
}

func NewHandler(service *Service, moderation *ModerationService) *Handler {
	return &Handler{service: service, moderation: moderation}
}

// RegisterRoutes mounts the admin console endpoints. The group is
// expected to carry Auth plus the admin role check.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.GetStats)
	admin.GET("/reports", h.GetReport)
	admin.GET("/agencies/pending", h.ListPendingAgencies)
	admin.PUT("/agencies/:id/approve", h.ApproveAgency)
	admin.PUT("/agencies/:id/reject", h.RejectAgency)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.PlatformStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch platform stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) GetReport(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid report parameters")
		return
	}

	from, to, err := resolveRange(q)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range")
		return
	}

	ctx := c.Request.Context()
	var data any
	switch q.Type {
	case "", "summary":
		data, err = h.service.Summary(ctx, from, to)
	case "series":
		data, err = h.service.Series(ctx, from, to, q.GroupBy)
	case "top_agencies":
		limit := q.Limit
		if limit == 0 {
			limit = 10
		}
		data, err = h.service.TopAgencies(ctx, from, to, limit)
	case "cities":
		data, err = h.service.RevenueByCity(ctx, from, to)
	case "statuses":
		data, err = h.service.StatusDistribution(ctx, from, to)
	case "categories":
		data, err = h.service.CategoryPopularity(ctx)
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown report type")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to build report")
		return
	}

	// Echo the inclusive end date the caller passed, not the half-open bound.
	echoTo := to
	if q.To != "" {
		echoTo = to.AddDate(0, 0, -1)
	}
	response.Success(c, http.StatusOK, gin.H{
		"report": data,
		"from":   from.Format("2006-01-02"),
		"to":     echoTo.Format("2006-01-02"),
	})
}

// resolveRange turns period/from/to query params into a half-open [from, to)
// window, defaulting to the last 30 days.
func resolveRange(q ReportQuery) (time.Time, time.Time, error) {
	now := time.Now()
	to := now

	if q.From != "" || q.To != "" {
		from, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if q.To != "" {
			parsed, err := time.Parse("2006-01-02", q.To)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// Inclusive end date.
			to = parsed.AddDate(0, 0, 1)
		}
		if !from.Before(to) {
			return time.Time{}, time.Time{}, errors.New("from must precede to")
		}
		return from, to, nil
	}

	switch q.Period {
	case "7d":
		return now.AddDate(0, 0, -7), to, nil
	case "90d":
		return now.AddDate(0, 0, -90), to, nil
	case "year":
		return now.AddDate(-1, 0, 0), to, nil
	default:
		return now.AddDate(0, 0, -30), to, nil
	}
}

func (h *Handler) ListPendingAgencies(c *gin.Context) {
	var q PendingAgenciesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	agencies, total, err := h.moderation.ListPending(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch pending agencies")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agencies": agencies, "total": total})
}

func (h *Handler) ApproveAgency(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid agency id")
		return
	}

	a, err := h.moderation.Approve(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agency not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to approve agency")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agency": a})
}

func (h *Handler) RejectAgency(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid agency id")
		return
	}

	var req RejectAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
		return
	}

	a, err := h.moderation.Reject(c.Request.Context(), c.GetInt64("user_id"), id, req.Reason)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agency not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to reject agency")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agency": a})
}
