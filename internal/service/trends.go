package service

import (
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

const (
	// MoodTrendSample is how many of the most recent mood check-ins feed the mood trend
	MoodTrendSample = 14
	// MoodTrendThreshold is the half-over-half mean difference that counts as a change
	MoodTrendThreshold = 0.5
	// FrequencyTrendThreshold is the relative week-over-week change for activity counts
	FrequencyTrendThreshold = 0.2
	// ScoreTrendThreshold is the relative week-over-week change for the wellness score
	ScoreTrendThreshold = 0.1

	week = 7 * 24 * time.Hour
)

func analyzeTrends(windowed models.Snapshot, now time.Time) models.Trends {
	thisWeek := filterRange(windowed, now.Add(-week), now)
	lastWeek := filterRange(windowed, now.Add(-2*week), now.Add(-week))

	frequency := make(map[models.Category]models.FrequencyTrend, len(models.AllCategories))
	for _, c := range models.AllCategories {
		frequency[c] = frequencyTrend(thisWeek.Count(c), lastWeek.Count(c))
	}

	return models.Trends{
		Mood:              moodTrend(windowed.MoodEntries()),
		ActivityFrequency: frequency,
		WellnessScore: weekOverWeek(
			float64(wellnessScore(thisWeek)),
			float64(wellnessScore(lastWeek)),
			ScoreTrendThreshold,
		),
	}
}

// moodTrend compares the two halves of the most recent check-ins
func moodTrend(moods []models.MoodEntry) models.Trend {
	if len(moods) < 2 {
		return models.TrendInsufficientData
	}

	sorted := append([]models.MoodEntry(nil), moods...)
	models.SortMoodEntries(sorted)
	if len(sorted) > MoodTrendSample {
		sorted = sorted[len(sorted)-MoodTrendSample:]
	}

	mid := len(sorted) / 2
	first := make([]float64, 0, mid)
	second := make([]float64, 0, len(sorted)-mid)
	for i, m := range sorted {
		if i < mid {
			first = append(first, m.Mood)
		} else {
			second = append(second, m.Mood)
		}
	}

	diff := mean(second) - mean(first)
	switch {
	case diff > MoodTrendThreshold:
		return models.TrendImproving
	case diff < -MoodTrendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func frequencyTrend(thisWeek, lastWeek int) models.FrequencyTrend {
	ft := models.FrequencyTrend{
		Trend:    weekOverWeek(float64(thisWeek), float64(lastWeek), FrequencyTrendThreshold),
		ThisWeek: thisWeek,
		LastWeek: lastWeek,
	}
	if lastWeek > 0 {
		ft.ChangePercent = round1(float64(thisWeek-lastWeek) / float64(lastWeek) * 100)
	}
	return ft
}

// weekOverWeek classifies a relative change. A zero baseline is "new" when
// there is activity now and "none" when there is not.
func weekOverWeek(current, previous, threshold float64) models.Trend {
	if previous == 0 {
		if current > 0 {
			return models.TrendNew
		}
		return models.TrendNone
	}

	change := (current - previous) / previous
	switch {
	case change > threshold:
		return models.TrendIncreasing
	case change < -threshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}
