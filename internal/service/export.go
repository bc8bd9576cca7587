package service

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

const (
	// HealthcareWindowDays is the window of the healthcare export
	HealthcareWindowDays = 90
	// ResearchWindowDays is the window of the research export
	ResearchWindowDays = 365
	// RecentMoodCount is how many mood check-ins the healthcare export lists
	RecentMoodCount = 10
	// EffectiveImprovementRate is the improvement rate above which meditation
	// is reported as improving mood
	EffectiveImprovementRate = 50
)

func buildHealthcareReport(insights *models.WellnessInsights, windowed models.Snapshot, now time.Time) *models.HealthcareReport {
	messages := make([]string, 0, len(insights.Correlations))
	for _, c := range insights.Correlations {
		messages = append(messages, c.Message)
	}

	return &models.HealthcareReport{
		GeneratedAt:  now,
		ReportPeriod: fmt.Sprintf("%d days", insights.WindowDays),
		Summary: models.PatientSummary{
			TotalActivities: insights.Overview.TotalActivities,
			ActiveDays:      insights.Overview.ActiveDays,
			AverageMood:     insights.Overview.AvgMood,
			CurrentStreak:   insights.Overview.CurrentStreak,
			BestStreak:      insights.Overview.BestStreak,
			WellnessScore:   insights.Overview.WellnessScore,
		},
		Trends:          insights.Trends,
		Correlations:    messages,
		ActivityCounts:  insights.Overview.ActivityCounts,
		Recommendations: insights.Recommendations,
		RecentMoods:     recentMoods(windowed.MoodEntries(), RecentMoodCount),
	}
}

// recentMoods returns the last n check-ins in chronological order
func recentMoods(moods []models.MoodEntry, n int) []models.MoodLogEntry {
	sorted := append([]models.MoodEntry(nil), moods...)
	models.SortMoodEntries(sorted)
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}

	out := make([]models.MoodLogEntry, 0, len(sorted))
	for _, m := range sorted {
		out = append(out, models.MoodLogEntry{
			Timestamp: m.Timestamp,
			Mood:      m.Mood,
			Anxiety:   m.Anxiety,
			Energy:    m.Energy,
			Notes:     m.Notes,
		})
	}
	return out
}

// buildResearchReport keeps counts and shapes only. Nothing that identifies
// a record or carries user text is copied across.
func buildResearchReport(insights *models.WellnessInsights) *models.ResearchReport {
	frequency := make(map[models.Category]models.Trend, len(insights.Trends.ActivityFrequency))
	for c, ft := range insights.Trends.ActivityFrequency {
		frequency[c] = ft.Trend
	}

	correlations := make([]models.ResearchCorrelation, 0, len(insights.Correlations))
	breathingReducesStress := false
	for _, c := range insights.Correlations {
		correlations = append(correlations, models.ResearchCorrelation{
			Type:        c.Type,
			Correlation: round2(c.Correlation),
			Strength:    c.Strength,
		})
		if c.Type == models.CorrelationBreathingAnxiety && c.Correlation > 0 {
			breathingReducesStress = true
		}
	}

	effectiveness := insights.Patterns.ActivityEffectiveness

	return &models.ResearchReport{
		DataPeriod: fmt.Sprintf("%d days", insights.WindowDays),
		Metrics: models.ResearchMetrics{
			TotalActivities: insights.Overview.TotalActivities,
			ActiveDays:      insights.Overview.ActiveDays,
			AverageMood:     insights.Overview.AvgMood,
			BestStreak:      insights.Overview.BestStreak,
			WellnessScore:   insights.Overview.WellnessScore,
			ActivityCounts:  insights.Overview.ActivityCounts,
		},
		Patterns: models.ResearchPatterns{
			DailyActivity:   insights.Patterns.DailyActivity,
			MoodByDayOfWeek: insights.Patterns.MoodByDayOfWeek,
			MoodByTimeOfDay: insights.Patterns.MoodByTimeOfDay,
		},
		Trends: models.ResearchTrends{
			Mood:              insights.Trends.Mood,
			ActivityFrequency: frequency,
			WellnessScore:     insights.Trends.WellnessScore,
		},
		Correlations: correlations,
		Effectiveness: models.ResearchEffectiveness{
			BreathingReducesStress: breathingReducesStress,
			MeditationImprovesMood: effectiveness[models.CategoryMeditation].ImprovementRate > EffectiveImprovementRate,
			ExerciseMoodImpact:     effectiveness[models.CategoryExercise].ImprovementRate,
		},
	}
}
