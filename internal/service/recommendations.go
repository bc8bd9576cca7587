package service

import (
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// MaxRecommendations caps the recommendation list
const MaxRecommendations = 3

// recommendationRule fires when its condition holds. Rules are evaluated in
// slice order and the first MaxRecommendations matches are kept.
type recommendationRule struct {
	applies        func(overview models.Overview, windowed models.Snapshot) bool
	recommendation models.Recommendation
}

var recommendationRules = []recommendationRule{
	{
		applies: func(o models.Overview, _ models.Snapshot) bool { return o.AvgMood < 6 },
		recommendation: models.Recommendation{
			Type:        "mood-improvement",
			Priority:    models.PriorityHigh,
			Title:       "Focus on Mood Boosting Activities",
			Description: "Your average mood has been lower lately. Activities that lifted your mood before are a good place to start.",
			Actions:     []string{"Write down three things you are grateful for", "Try a short guided meditation", "Take a walk or do light exercise"},
			Components:  []string{"GratitudeJournal", "MeditationTimer", "ExerciseTracker"},
		},
	},
	{
		applies: func(o models.Overview, _ models.Snapshot) bool { return o.CurrentStreak < 3 },
		recommendation: models.Recommendation{
			Type:        "consistency",
			Priority:    models.PriorityMedium,
			Title:       "Build a Daily Check-in Habit",
			Description: "Checking in every day makes your patterns easier to see. Small, regular entries add up.",
			Actions:     []string{"Log your mood at the same time each day", "Set a daily reminder", "Start with a one-minute check-in"},
			Components:  []string{"MoodTracker", "HabitTracker"},
		},
	},
	{
		applies: func(_ models.Overview, w models.Snapshot) bool { return countStressedCheckins(w) > 3 },
		recommendation: models.Recommendation{
			Type:        "stress-management",
			Priority:    models.PriorityHigh,
			Title:       "Manage Stress and Anxiety",
			Description: "Several recent check-ins show low mood together with high anxiety. Calming techniques can help in those moments.",
			Actions:     []string{"Practice box breathing for five minutes", "Try the 5-4-3-2-1 grounding exercise", "Open your coping toolkit"},
			Components:  []string{"BreathingExercise", "GroundingTechniques", "CopingToolkit"},
		},
	},
	{
		applies: func(_ models.Overview, w models.Snapshot) bool {
			return w.Count(models.CategoryCouples) == 0 && w.Count(models.CategoryExercise) == 0
		},
		recommendation: models.Recommendation{
			Type:        "social-connection",
			Priority:    models.PriorityMedium,
			Title:       "Connect and Move",
			Description: "Time with others and physical activity both support wellbeing. Neither has been logged recently.",
			Actions:     []string{"Plan an activity with your partner or a friend", "Schedule a short workout"},
			Components:  []string{"CouplesActivities", "ExerciseTracker"},
		},
	},
}

func generateRecommendations(overview models.Overview, windowed models.Snapshot) []models.Recommendation {
	recs := make([]models.Recommendation, 0, MaxRecommendations)
	for _, rule := range recommendationRules {
		if len(recs) == MaxRecommendations {
			break
		}
		if rule.applies(overview, windowed) {
			recs = append(recs, cloneRecommendation(rule.recommendation))
		}
	}
	return recs
}

// countStressedCheckins counts check-ins with mood below 5 and anxiety above 6
func countStressedCheckins(windowed models.Snapshot) int {
	n := 0
	for _, m := range windowed.MoodEntries() {
		if m.Mood < 5 && m.Anxiety != nil && *m.Anxiety > 6 {
			n++
		}
	}
	return n
}

func cloneRecommendation(r models.Recommendation) models.Recommendation {
	r.Actions = append([]string(nil), r.Actions...)
	r.Components = append([]string(nil), r.Components...)
	return r
}
