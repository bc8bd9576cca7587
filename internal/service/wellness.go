package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
	"github.com/JonnyWalker81/wellspring/backend/internal/observability"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
)

const (
	// DefaultWindowDays is the insights window used when none is configured
	DefaultWindowDays = 30
	// MaxWindowDays is the largest window the API and CLI accept
	MaxWindowDays = 365
)

// ValidWindow reports whether days is a window callers may request
func ValidWindow(days int) bool {
	return days >= 1 && days <= MaxWindowDays
}

type wellnessService struct {
	repo          repository.RecordRepository
	now           func() time.Time
	loc           *time.Location
	defaultWindow int
}

// Option configures a WellnessService
type Option func(*wellnessService)

// WithClock overrides the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *wellnessService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone used for calendar days and hours
func WithLocation(loc *time.Location) Option {
	return func(s *wellnessService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithDefaultWindow sets the window used when choosing today's focus
func WithDefaultWindow(days int) Option {
	return func(s *wellnessService) {
		if ValidWindow(days) {
			s.defaultWindow = days
		}
	}
}

// NewWellnessService creates a new wellness analytics service
func NewWellnessService(repo repository.RecordRepository, opts ...Option) WellnessService {
	s := &wellnessService{
		repo:          repo,
		now:           time.Now,
		loc:           time.Local,
		defaultWindow: DefaultWindowDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetWellnessInsights computes the insight bundle for a trailing window.
// A window of zero or fewer days selects no records.
func (s *wellnessService) GetWellnessInsights(ctx context.Context, days int) (*models.WellnessInsights, error) {
	ctx = logger.WithOperation(ctx, "insights")
	defer observability.ObserveOperation("insights", time.Now())

	snapshot, err := loadSnapshot(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get wellness insights: %w", err)
	}

	now := s.now()
	insights, _ := s.computeInsights(snapshot, days, now)
	observability.RecordWellnessScore(insights.Overview.WellnessScore)

	logger.Ctx(ctx).Debug("computed wellness insights",
		logger.WindowDays(days),
		logger.Int("total_activities", insights.Overview.TotalActivities),
		logger.Int("wellness_score", insights.Overview.WellnessScore),
	)

	return insights, nil
}

// GetTodaysFocus chooses the single suggestion for today
func (s *wellnessService) GetTodaysFocus(ctx context.Context) (*models.TodaysFocus, error) {
	ctx = logger.WithOperation(ctx, "focus")
	defer observability.ObserveOperation("focus", time.Now())

	snapshot, err := loadSnapshot(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's focus: %w", err)
	}

	now := s.now()
	insights, _ := s.computeInsights(snapshot, s.defaultWindow, now)
	focus := selectTodaysFocus(snapshot, insights.Recommendations, now, s.loc)

	logger.Ctx(ctx).Debug("selected today's focus", logger.String("type", focus.Type))
	return &focus, nil
}

// ExportHealthcareData builds the 90-day patient summary
func (s *wellnessService) ExportHealthcareData(ctx context.Context) (*models.HealthcareReport, error) {
	ctx = logger.WithOperation(ctx, "export_healthcare")
	defer observability.ObserveOperation("export_healthcare", time.Now())

	snapshot, err := loadSnapshot(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to export healthcare data: %w", err)
	}

	now := s.now()
	insights, windowed := s.computeInsights(snapshot, HealthcareWindowDays, now)
	return buildHealthcareReport(insights, windowed, now), nil
}

// ExportResearchData builds the anonymised 365-day research view
func (s *wellnessService) ExportResearchData(ctx context.Context) (*models.ResearchReport, error) {
	ctx = logger.WithOperation(ctx, "export_research")
	defer observability.ObserveOperation("export_research", time.Now())

	snapshot, err := loadSnapshot(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to export research data: %w", err)
	}

	insights, _ := s.computeInsights(snapshot, ResearchWindowDays, s.now())
	return buildResearchReport(insights), nil
}

// computeInsights is a pure function of the snapshot, window and clock. It
// also returns the windowed snapshot for callers that need raw records.
func (s *wellnessService) computeInsights(snapshot models.Snapshot, days int, now time.Time) (*models.WellnessInsights, models.Snapshot) {
	windowed := filterWindow(snapshot, days, now)

	overview := calculateOverview(windowed, now, s.loc)

	return &models.WellnessInsights{
		WindowDays:      days,
		ComputedAt:      now,
		Overview:        overview,
		Patterns:        analyzePatterns(windowed, s.loc),
		Correlations:    findCorrelations(windowed, s.loc),
		Trends:          analyzeTrends(windowed, now),
		Recommendations: generateRecommendations(overview, windowed),
	}, windowed
}
