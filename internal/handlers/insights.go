package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/wellspring/backend/internal/apierror"
	"github.com/JonnyWalker81/wellspring/backend/internal/service"
)

// InsightsHandler serves the read-only analytics endpoints
type InsightsHandler struct {
	wellnessService service.WellnessService
	defaultDays     int
}

// NewInsightsHandler creates a new insights handler. defaultDays is used when
// the days query parameter is absent.
func NewInsightsHandler(wellnessService service.WellnessService, defaultDays int) *InsightsHandler {
	if !service.ValidWindow(defaultDays) {
		defaultDays = service.DefaultWindowDays
	}
	return &InsightsHandler{
		wellnessService: wellnessService,
		defaultDays:     defaultDays,
	}
}

// GetInsights returns the wellness insight bundle for a trailing window
// GET /api/v1/insights?days=30
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	days := h.defaultDays
	if raw, ok := c.GetQuery("days"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || !service.ValidWindow(parsed) {
			apierror.WriteProblem(c, apierror.NewInvalidWindowError(apierror.GetRequestID(c), raw, service.MaxWindowDays))
			return
		}
		days = parsed
	}

	insights, err := h.wellnessService.GetWellnessInsights(c.Request.Context(), days)
	if err != nil {
		writeServiceError(c, err, "failed to get wellness insights")
		return
	}

	c.JSON(http.StatusOK, insights)
}

// GetTodaysFocus returns the single suggested activity for today
// GET /api/v1/insights/focus
func (h *InsightsHandler) GetTodaysFocus(c *gin.Context) {
	focus, err := h.wellnessService.GetTodaysFocus(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to get today's focus")
		return
	}

	c.JSON(http.StatusOK, focus)
}

// ExportHealthcare returns the 90-day report for a care provider
// GET /api/v1/exports/healthcare
func (h *InsightsHandler) ExportHealthcare(c *gin.Context) {
	report, err := h.wellnessService.ExportHealthcareData(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to export healthcare data")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="wellspring-healthcare.json"`)
	c.JSON(http.StatusOK, report)
}

// ExportResearch returns the anonymised 365-day research report
// GET /api/v1/exports/research
func (h *InsightsHandler) ExportResearch(c *gin.Context) {
	report, err := h.wellnessService.ExportResearchData(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to export research data")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="wellspring-research.json"`)
	c.JSON(http.StatusOK, report)
}
