package service

import (
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// selectTodaysFocus picks a single suggestion for today. The first matching
// rule wins; the mood check-in always comes first.
func selectTodaysFocus(snapshot models.Snapshot, recommendations []models.Recommendation, now time.Time, loc *time.Location) models.TodaysFocus {
	local := now.In(loc)
	today := models.DateKey(local, loc)

	if !loggedOn(snapshot, models.CategoryMood, today, loc) {
		return models.TodaysFocus{
			Type:          "mood-checkin",
			Title:         "Check in with yourself",
			Description:   "You haven't logged your mood today. A quick check-in helps you notice how you're doing.",
			Component:     "MoodTracker",
			Priority:      models.PriorityEssential,
			EstimatedTime: "2 min",
		}
	}

	for _, rec := range recommendations {
		if rec.Priority != models.PriorityHigh {
			continue
		}
		component := ""
		if len(rec.Components) > 0 {
			component = rec.Components[0]
		}
		return models.TodaysFocus{
			Type:          rec.Type,
			Title:         rec.Title,
			Description:   rec.Description,
			Component:     component,
			Priority:      models.PriorityHigh,
			EstimatedTime: "10 min",
		}
	}

	hour := local.Hour()
	if hour < 12 && !loggedOn(snapshot, models.CategoryMeditation, today, loc) {
		return models.TodaysFocus{
			Type:          "morning-meditation",
			Title:         "Start your day mindfully",
			Description:   "A short morning meditation sets a calm tone for the rest of the day.",
			Component:     "MeditationTimer",
			Priority:      models.PriorityMedium,
			EstimatedTime: "10 min",
		}
	}

	if hour > 17 && !loggedOn(snapshot, models.CategoryGratitude, today, loc) {
		return models.TodaysFocus{
			Type:          "evening-gratitude",
			Title:         "Reflect on your day",
			Description:   "Note a few things you were grateful for today before winding down.",
			Component:     "GratitudeJournal",
			Priority:      models.PriorityMedium,
			EstimatedTime: "5 min",
		}
	}

	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return models.TodaysFocus{
			Type:          "weekend-selfcare",
			Title:         "Weekend self-care",
			Description:   "Take some unhurried time for an activity that recharges you.",
			Component:     "MindfulMovement",
			Priority:      models.PriorityMedium,
			EstimatedTime: "15 min",
		}
	}

	return models.TodaysFocus{
		Type:          "breathing-break",
		Title:         "Take a breathing break",
		Description:   "Pause for a few slow breaths to reset during your day.",
		Component:     "BreathingExercise",
		Priority:      models.PriorityLow,
		EstimatedTime: "5 min",
	}
}

func loggedOn(snapshot models.Snapshot, category models.Category, day string, loc *time.Location) bool {
	for _, r := range snapshot[category] {
		t := r.OccurredAt()
		if !t.IsZero() && models.DateKey(t, loc) == day {
			return true
		}
	}
	return false
}
