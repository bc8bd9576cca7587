package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wellspring",
		Subsystem: "engine",
		Name:      "operation_duration_seconds",
		Help:      "Time spent computing an analytics operation, including storage reads.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	storageErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wellspring",
		Name:      "storage_errors_total",
		Help:      "Storage read or write failures, by backend.",
	}, []string{"backend"})

	wellnessScore = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wellspring",
		Name:      "wellness_score",
		Help:      "Most recently computed wellness score (0-100).",
	})

	activitiesLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wellspring",
		Name:      "activities_logged_total",
		Help:      "Activity records appended through the API or importer, by category.",
	}, []string{"category"})
)

func init() {
	prometheus.MustRegister(operationDuration, storageErrors, wellnessScore, activitiesLogged)
}

// ObserveOperation records how long an engine operation took
func ObserveOperation(operation string, started time.Time) {
	operationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// RecordStorageError counts a failed storage call
func RecordStorageError(backend string) {
	if backend == "" {
		backend = "unknown"
	}
	storageErrors.WithLabelValues(backend).Inc()
}

// RecordWellnessScore updates the wellness score gauge
func RecordWellnessScore(score int) {
	wellnessScore.Set(float64(score))
}

// RecordActivityLogged counts an appended record
func RecordActivityLogged(category string) {
	activitiesLogged.WithLabelValues(category).Inc()
}

// RecordActivityLoggedN counts n appended records of one category
func RecordActivityLoggedN(category string, n int) {
	if n <= 0 {
		return
	}
	activitiesLogged.WithLabelValues(category).Add(float64(n))
}
