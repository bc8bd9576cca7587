package service

import (
	"math"
	"sort"
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

const (
	// CorrelationReportThreshold is the |r| a finding must exceed to be reported
	CorrelationReportThreshold = 0.3
	// CorrelationStrongThreshold is the |r| above which a finding is strong
	CorrelationStrongThreshold = 0.7
)

// moodField selects the daily value an activity is correlated against
type moodField func(models.MoodEntry) (float64, bool)

func moodValue(m models.MoodEntry) (float64, bool) { return m.Mood, true }

func anxietyValue(m models.MoodEntry) (float64, bool) {
	if m.Anxiety == nil {
		return 0, false
	}
	return *m.Anxiety, true
}

type correlationPair struct {
	kind     models.CorrelationType
	activity models.Category
	field    moodField
	// invert flips the sign so that "activity lowers anxiety" reads positive
	invert   bool
	positive string
	negative string
}

var correlationPairs = []correlationPair{
	{
		kind:     models.CorrelationExerciseMood,
		activity: models.CategoryExercise,
		field:    moodValue,
		positive: "Exercise appears to boost your mood. Days with workouts tend to be better days.",
		negative: "Your mood tends to be lower on days you exercise. Gentler movement may suit you better.",
	},
	{
		kind:     models.CorrelationMeditationMood,
		activity: models.CategoryMeditation,
		field:    moodValue,
		positive: "Meditation is associated with a better mood for you.",
		negative: "Your mood tends to be lower on meditation days. Try a different technique or time of day.",
	},
	{
		kind:     models.CorrelationBreathingAnxiety,
		activity: models.CategoryBreathing,
		field:    anxietyValue,
		invert:   true,
		positive: "Breathing exercises seem to reduce your anxiety.",
		negative: "Anxiety tends to be higher on days you do breathing exercises. You may be reaching for them when stressed.",
	},
}

func findCorrelations(windowed models.Snapshot, loc *time.Location) []models.Correlation {
	moods := windowed.MoodEntries()
	findings := make([]models.Correlation, 0, len(correlationPairs))

	for _, pair := range correlationPairs {
		r, days := correlateDaily(windowed[pair.activity], moods, pair.field, loc)
		if pair.invert {
			r = -r
		}
		if math.Abs(r) <= CorrelationReportThreshold {
			continue
		}

		finding := models.Correlation{
			Type:        pair.kind,
			Correlation: r,
			Strength:    models.StrengthModerate,
			Message:     pair.positive,
			SampleDays:  days,
		}
		if math.Abs(r) > CorrelationStrongThreshold {
			finding.Strength = models.StrengthStrong
		}
		if r < 0 {
			finding.Message = pair.negative
		}
		findings = append(findings, finding)
	}

	return findings
}

// correlateDaily pairs a zero-filled daily activity count with the daily
// mean of field over every day that has at least one field value
func correlateDaily(activity []models.ActivityRecord, moods []models.MoodEntry, field moodField, loc *time.Location) (float64, int) {
	counts := make(map[string]float64)
	for _, r := range activity {
		counts[models.DateKey(r.OccurredAt(), loc)]++
	}

	daily := make(map[string][]float64)
	for _, m := range moods {
		v, ok := field(m)
		if !ok {
			continue
		}
		key := models.DateKey(m.Timestamp, loc)
		daily[key] = append(daily[key], v)
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	xs := make([]float64, 0, len(days))
	ys := make([]float64, 0, len(days))
	for _, day := range days {
		xs = append(xs, counts[day])
		ys = append(ys, mean(daily[day]))
	}

	return pearson(xs, ys), len(days)
}
