package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/wellspring/backend/internal/apierror"
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
	"github.com/JonnyWalker81/wellspring/backend/internal/service"
)

// maxActivityBody caps a single logged record
const maxActivityBody = 1 << 20

// recordIDKey holds the client-supplied record ID on the gin context
const recordIDKey = "record_id"

// ActivityHandler handles activity logging requests
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// activityList is the response body for a category listing
type activityList struct {
	Category models.Category         `json:"category"`
	Count    int                     `json:"count"`
	Records  []models.ActivityRecord `json:"records"`
}

// ListActivities returns all records of one category, oldest first
// GET /api/v1/activities/:category
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	records, err := h.activityService.ListActivities(c.Request.Context(), category)
	if err != nil {
		writeServiceError(c, err, "failed to list activities")
		return
	}

	c.JSON(http.StatusOK, activityList{
		Category: category,
		Count:    len(records),
		Records:  records,
	})
}

// LogActivity appends a record to a category
// POST /api/v1/activities/:category
func (h *ActivityHandler) LogActivity(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxActivityBody))
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(
			apierror.GetRequestID(c),
			fmt.Sprintf("failed to read request body: %v", err),
			"The activity could not be read",
		))
		return
	}

	var probe struct {
		ID any `json:"id"`
	}
	if json.Unmarshal(body, &probe) == nil && probe.ID != nil {
		c.Set(recordIDKey, fmt.Sprint(probe.ID))
	}

	record, err := h.activityService.LogActivity(c.Request.Context(), category, body)
	if err != nil {
		writeServiceError(c, err, "failed to log activity")
		return
	}

	c.JSON(http.StatusCreated, record)
}

func categoryParam(c *gin.Context) (models.Category, bool) {
	raw := c.Param("category")
	category, err := models.ParseCategory(raw)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInvalidCategoryError(apierror.GetRequestID(c), raw))
		return "", false
	}
	return category, true
}
