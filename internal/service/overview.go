package service

import (
	"math"
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// StreakLookbackDays bounds the backward walk of the current streak
const StreakLookbackDays = 30

// overviewCategories are the categories reported in activityCounts
var overviewCategories = []models.Category{
	models.CategoryMood,
	models.CategoryGratitude,
	models.CategoryBreathing,
	models.CategoryMeditation,
	models.CategoryExercise,
	models.CategoryJournal,
}

// wellnessWeights sum to 1.0, which bounds the score at 100
var wellnessWeights = []struct {
	category models.Category
	weight   float64
}{
	{models.CategoryMood, 0.25},
	{models.CategoryGratitude, 0.15},
	{models.CategoryBreathing, 0.15},
	{models.CategoryMeditation, 0.15},
	{models.CategoryExercise, 0.15},
	{models.CategoryJournal, 0.10},
	{models.CategoryHabits, 0.05},
}

func calculateOverview(windowed models.Snapshot, now time.Time, loc *time.Location) models.Overview {
	moods := windowed.MoodEntries()

	counts := make(map[models.Category]int, len(overviewCategories))
	for _, c := range overviewCategories {
		counts[c] = windowed.Count(c)
	}

	return models.Overview{
		TotalActivities: windowed.Total(),
		ActiveDays:      countActiveDays(windowed, loc),
		CurrentStreak:   currentStreak(moods, now, loc),
		BestStreak:      bestStreak(moods),
		AvgMood:         averageMood(moods),
		ActivityCounts:  counts,
		WellnessScore:   wellnessScore(windowed),
	}
}

func countActiveDays(snapshot models.Snapshot, loc *time.Location) int {
	days := make(map[string]struct{})
	for _, c := range models.AllCategories {
		for _, r := range snapshot[c] {
			days[models.DateKey(r.OccurredAt(), loc)] = struct{}{}
		}
	}
	return len(days)
}

// currentStreak walks back from today counting days with a mood check-in.
// A missing today does not end the walk; any later gap does.
func currentStreak(moods []models.MoodEntry, now time.Time, loc *time.Location) int {
	logged := make(map[string]bool, len(moods))
	for _, m := range moods {
		logged[models.DateKey(m.Timestamp, loc)] = true
	}

	today := now.In(loc)
	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		day := models.DateKey(today.AddDate(0, 0, -i), loc)
		if logged[day] {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// bestStreak is the longest run of mood check-ins each at most 24h after
// the previous one
func bestStreak(moods []models.MoodEntry) int {
	if len(moods) == 0 {
		return 0
	}

	sorted := append([]models.MoodEntry(nil), moods...)
	models.SortMoodEntries(sorted)

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Timestamp.Sub(sorted[i-1].Timestamp) <= 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func averageMood(moods []models.MoodEntry) float64 {
	values := make([]float64, 0, len(moods))
	for _, m := range moods {
		values = append(values, m.Mood)
	}
	return round1(mean(values))
}

func wellnessScore(snapshot models.Snapshot) int {
	var score float64
	for _, w := range wellnessWeights {
		score += w.weight * math.Min(float64(snapshot.Count(w.category)*10), 100)
	}
	return int(math.Round(score))
}
