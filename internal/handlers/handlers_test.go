package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/wellspring/backend/internal/apierror"
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
	"github.com/JonnyWalker81/wellspring/backend/internal/service"
)

var fixedNow = time.Date(2024, time.January, 5, 14, 0, 0, 0, time.UTC)

func seededRepo() *repository.MemoryRepository {
	snapshot := models.NewSnapshot()
	snapshot[models.CategoryMood] = []models.ActivityRecord{
		models.MoodEntry{ID: "m1", Timestamp: fixedNow.Add(-2 * time.Hour), Mood: 7},
		models.MoodEntry{ID: "m2", Timestamp: fixedNow.Add(-26 * time.Hour), Mood: 6},
	}
	return repository.NewMemoryRepository(snapshot)
}

func newTestRouter(repo *repository.MemoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	wellness := service.NewWellnessService(repo,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithLocation(time.UTC),
	)
	insights := NewInsightsHandler(wellness, 30)
	activities := NewActivityHandler(service.NewActivityService(repo, time.UTC))

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/insights", insights.GetInsights)
	v1.GET("/insights/focus", insights.GetTodaysFocus)
	v1.GET("/exports/healthcare", insights.ExportHealthcare)
	v1.GET("/exports/research", insights.ExportResearch)
	v1.GET("/activities/:category", activities.ListActivities)
	v1.POST("/activities/:category", activities.LogActivity)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) apierror.ProblemDetails {
	t.Helper()
	assert.Equal(t, apierror.ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	var problem apierror.ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return problem
}

// uuidV7At builds a version 7 UUID carrying the given timestamp
func uuidV7At(t time.Time) string {
	var u uuid.UUID
	ms := uint64(t.UnixMilli())
	for i := 0; i < 6; i++ {
		u[i] = byte(ms >> (40 - 8*i))
	}
	u[6] = 0x70
	u[8] = 0x80
	return u.String()
}

func TestGetInsights(t *testing.T) {
	router := newTestRouter(seededRepo())

	t.Run("default window", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/insights", "")
		require.Equal(t, http.StatusOK, w.Code)

		var insights models.WellnessInsights
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &insights))
		assert.Equal(t, 30, insights.WindowDays)
		assert.Equal(t, 2, insights.Overview.TotalActivities)
		assert.Equal(t, 6.5, insights.Overview.AvgMood)
	})

	t.Run("explicit window", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/insights?days=7", "")
		require.Equal(t, http.StatusOK, w.Code)

		var insights models.WellnessInsights
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &insights))
		assert.Equal(t, 7, insights.WindowDays)
	})

	for _, days := range []string{"0", "-3", "366", "abc", ""} {
		t.Run("invalid days "+days, func(t *testing.T) {
			w := serve(router, http.MethodGet, "/api/v1/insights?days="+days, "")
			require.Equal(t, http.StatusBadRequest, w.Code)

			problem := decodeProblem(t, w)
			assert.Equal(t, apierror.TypeInvalidWindow, problem.Type)
			assert.Equal(t, "/api/v1/insights", problem.Instance)
		})
	}
}

func TestStorageFailureIsServiceUnavailable(t *testing.T) {
	repo := seededRepo()
	repo.Err = errors.New("disk I/O error")
	router := newTestRouter(repo)

	for _, path := range []string{
		"/api/v1/insights",
		"/api/v1/insights/focus",
		"/api/v1/exports/healthcare",
		"/api/v1/exports/research",
		"/api/v1/activities/mood",
	} {
		t.Run(path, func(t *testing.T) {
			w := serve(router, http.MethodGet, path, "")
			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, "5", w.Header().Get("Retry-After"))

			problem := decodeProblem(t, w)
			assert.Equal(t, apierror.TypeStorageUnavailable, problem.Type)
		})
	}
}

func TestCircuitOpenRetryAfter(t *testing.T) {
	repo := seededRepo()
	repo.Err = repository.ErrCircuitOpen
	router := newTestRouter(repo)

	w := serve(router, http.MethodGet, "/api/v1/insights", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}

type brokenRepo struct{}

func (brokenRepo) GetByCategory(ctx context.Context, category models.Category) ([]models.ActivityRecord, error) {
	return nil, errors.New("boom")
}

func TestNonStorageFailureIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	insights := NewInsightsHandler(service.NewWellnessService(brokenRepo{}), 0)
	router := gin.New()
	router.GET("/api/v1/insights", insights.GetInsights)

	w := serve(router, http.MethodGet, "/api/v1/insights", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	problem := decodeProblem(t, w)
	assert.Equal(t, apierror.TypeInternal, problem.Type)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestGetTodaysFocusAndExports(t *testing.T) {
	router := newTestRouter(seededRepo())

	w := serve(router, http.MethodGet, "/api/v1/insights/focus", "")
	require.Equal(t, http.StatusOK, w.Code)
	var focus models.TodaysFocus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &focus))
	assert.NotEmpty(t, focus.Type)
	assert.NotEmpty(t, focus.Component)

	w = serve(router, http.MethodGet, "/api/v1/exports/healthcare", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "wellspring-healthcare.json")
	var healthcare models.HealthcareReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &healthcare))
	assert.Equal(t, "90 days", healthcare.ReportPeriod)
	assert.Len(t, healthcare.RecentMoods, 2)

	w = serve(router, http.MethodGet, "/api/v1/exports/research", "")
	require.Equal(t, http.StatusOK, w.Code)
	var research models.ResearchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &research))
	assert.Equal(t, "365 days", research.DataPeriod)
	assert.NotContains(t, w.Body.String(), "m1")
}

func TestListActivities(t *testing.T) {
	router := newTestRouter(seededRepo())

	w := serve(router, http.MethodGet, "/api/v1/activities/mood", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Category string            `json:"category"`
		Count    int               `json:"count"`
		Records  []json.RawMessage `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "mood", body.Category)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Records, 2)
	// oldest first
	assert.Contains(t, string(body.Records[0]), `"m2"`)

	w = serve(router, http.MethodGet, "/api/v1/activities/wellness_mood", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogActivity(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		body       string
		wantStatus int
		wantType   string
	}{
		{
			name:       "mood check-in",
			category:   "mood",
			body:       `{"mood": 8, "anxiety": 3, "timestamp": "2024-01-05T09:00:00Z"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "journal without date gets defaulted",
			category:   "journal",
			body:       `{"content": "slept well"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown category",
			category:   "sleep",
			body:       `{"hours": 8}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeInvalidCategory,
		},
		{
			name:       "mood out of range",
			category:   "mood",
			body:       `{"mood": 11}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeBadRequest,
		},
		{
			name:       "malformed json",
			category:   "mood",
			body:       `{"mood":`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeBadRequest,
		},
		{
			name:       "non-uuid id",
			category:   "mood",
			body:       `{"id": "abc", "mood": 5}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeInvalidRecordID,
		},
		{
			name:       "id minted in the future",
			category:   "mood",
			body:       `{"id": "` + uuidV7At(time.Now().Add(time.Hour)) + `", "mood": 5}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierror.TypeFutureTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepo()
			router := newTestRouter(repo)

			w := serve(router, http.MethodPost, "/api/v1/activities/"+tt.category, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantType != "" {
				problem := decodeProblem(t, w)
				assert.Equal(t, tt.wantType, problem.Type)
				return
			}

			var created map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
			id, _ := created["id"].(string)
			parsed, err := uuid.Parse(id)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())

			category, err := models.ParseCategory(tt.category)
			require.NoError(t, err)
			stored, err := repo.GetByCategory(t.Context(), category)
			require.NoError(t, err)
			assert.Equal(t, id, stored[len(stored)-1].RecordID())
		})
	}
}

func TestLogActivity_RejectedIDEchoed(t *testing.T) {
	router := newTestRouter(seededRepo())

	w := serve(router, http.MethodPost, "/api/v1/activities/mood", `{"id": "abc", "mood": 5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	problem := decodeProblem(t, w)
	assert.Equal(t, "Invalid record ID 'abc'", problem.Detail)
}
