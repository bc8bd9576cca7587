package service

import (
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// EffectivenessWindow is how far before and after an activity mood
// check-ins are compared
const EffectivenessWindow = 24 * time.Hour

// effectivenessCategories are the activities whose effect on mood is measured
var effectivenessCategories = []models.Category{
	models.CategoryBreathing,
	models.CategoryMeditation,
	models.CategoryExercise,
	models.CategoryGratitude,
}

func analyzePatterns(windowed models.Snapshot, loc *time.Location) models.Patterns {
	moods := windowed.MoodEntries()

	return models.Patterns{
		DailyActivity:         dailyActivity(windowed, loc),
		MoodByDayOfWeek:       moodByDayOfWeek(moods, loc),
		MoodByTimeOfDay:       moodByTimeOfDay(moods, loc),
		ActivityEffectiveness: activityEffectiveness(windowed, moods),
	}
}

func dailyActivity(snapshot models.Snapshot, loc *time.Location) map[models.Weekday]int {
	histogram := make(map[models.Weekday]int, 7)
	for _, d := range models.Weekdays {
		histogram[d] = 0
	}
	for _, c := range models.AllCategories {
		for _, r := range snapshot[c] {
			histogram[models.Weekday(r.OccurredAt().In(loc).Weekday())]++
		}
	}
	return histogram
}

func moodByDayOfWeek(moods []models.MoodEntry, loc *time.Location) map[models.Weekday]float64 {
	buckets := make(map[models.Weekday][]float64, 7)
	for _, m := range moods {
		d := models.Weekday(m.Timestamp.In(loc).Weekday())
		buckets[d] = append(buckets[d], m.Mood)
	}

	out := make(map[models.Weekday]float64, 7)
	for _, d := range models.Weekdays {
		out[d] = round1(mean(buckets[d]))
	}
	return out
}

func moodByTimeOfDay(moods []models.MoodEntry, loc *time.Location) map[models.TimeOfDay]float64 {
	buckets := make(map[models.TimeOfDay][]float64, 3)
	for _, m := range moods {
		tod := models.TimeOfDayForHour(m.Timestamp.In(loc).Hour())
		buckets[tod] = append(buckets[tod], m.Mood)
	}

	out := make(map[models.TimeOfDay]float64, 3)
	for _, tod := range models.TimesOfDay {
		out[tod] = round1(mean(buckets[tod]))
	}
	return out
}

// activityEffectiveness compares mean mood in the 24h before each activity
// with the 24h after it. Only instances with mood on both sides count.
func activityEffectiveness(snapshot models.Snapshot, moods []models.MoodEntry) map[models.Category]models.ActivityEffectiveness {
	out := make(map[models.Category]models.ActivityEffectiveness)

	for _, c := range effectivenessCategories {
		records := snapshot[c]
		if len(records) == 0 {
			continue
		}

		var eff models.ActivityEffectiveness
		for _, r := range records {
			t := r.OccurredAt()
			before, after := moodAround(moods, t)
			if len(before) == 0 || len(after) == 0 {
				continue
			}
			eff.Instances++
			if mean(after) > mean(before) {
				eff.Improvements++
			}
		}
		if eff.Instances > 0 {
			eff.ImprovementRate = round1(float64(eff.Improvements) / float64(eff.Instances) * 100)
		}
		out[c] = eff
	}

	return out
}

// moodAround returns mood values in [t-24h, t) and (t, t+24h]
func moodAround(moods []models.MoodEntry, t time.Time) (before, after []float64) {
	start := t.Add(-EffectivenessWindow)
	end := t.Add(EffectivenessWindow)
	for _, m := range moods {
		ts := m.Timestamp
		switch {
		case !ts.Before(start) && ts.Before(t):
			before = append(before, m.Mood)
		case ts.After(t) && !ts.After(end):
			after = append(after, m.Mood)
		}
	}
	return before, after
}
