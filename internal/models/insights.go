package models

import (
	"fmt"
	"time"
)

// Priority ranks a recommendation or focus suggestion
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityEssential Priority = "essential"
)

// Strength classifies the magnitude of a reported correlation
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
)

// Trend values shared by the mood, frequency and wellness score trends
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient-data"
	TrendIncreasing       Trend = "increasing"
	TrendDecreasing       Trend = "decreasing"
	TrendNew              Trend = "new"
	TrendNone             Trend = "none"
)

// Weekday is a day-of-week bucket key. It serialises as the English day
// name so JSON maps read {"Sunday": ...}.
type Weekday time.Weekday

// Weekdays lists the buckets in calendar order starting Sunday
var Weekdays = []Weekday{
	Weekday(time.Sunday),
	Weekday(time.Monday),
	Weekday(time.Tuesday),
	Weekday(time.Wednesday),
	Weekday(time.Thursday),
	Weekday(time.Friday),
	Weekday(time.Saturday),
}

func (d Weekday) String() string {
	return time.Weekday(d).String()
}

// MarshalText implements encoding.TextMarshaler
func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Weekday) UnmarshalText(b []byte) error {
	for _, wd := range Weekdays {
		if wd.String() == string(b) {
			*d = wd
			return nil
		}
	}
	return fmt.Errorf("unknown weekday %q", string(b))
}

// TimeOfDay is a coarse part-of-day bucket key
type TimeOfDay int

const (
	Morning TimeOfDay = iota
	Afternoon
	Evening
)

// TimesOfDay lists the buckets in order
var TimesOfDay = []TimeOfDay{Morning, Afternoon, Evening}

// TimeOfDayForHour buckets a local hour: morning before noon, afternoon
// until 18:00, evening after
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	default:
		return Evening
	}
}

func (t TimeOfDay) String() string {
	switch t {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	default:
		return "evening"
	}
}

// MarshalText implements encoding.TextMarshaler
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	for _, tod := range TimesOfDay {
		if tod.String() == string(b) {
			*t = tod
			return nil
		}
	}
	return fmt.Errorf("unknown time of day %q", string(b))
}

// Overview holds the headline statistics for a window
type Overview struct {
	TotalActivities int              `json:"totalActivities"`
	ActiveDays      int              `json:"activeDays"`
	CurrentStreak   int              `json:"currentStreak"`
	BestStreak      int              `json:"bestStreak"`
	AvgMood         float64          `json:"avgMood"`
	ActivityCounts  map[Category]int `json:"activityCounts"`
	WellnessScore   int              `json:"wellnessScore"`
}

// ActivityEffectiveness describes how often mood rose after an activity
type ActivityEffectiveness struct {
	ImprovementRate float64 `json:"improvementRate"` // percent, one decimal
	Instances       int     `json:"instances"`       // instances with mood logged on both sides
	Improvements    int     `json:"improvements"`
}

// Patterns holds the weekday and time-of-day breakdowns
type Patterns struct {
	DailyActivity         map[Weekday]int                    `json:"dailyActivity"`
	MoodByDayOfWeek       map[Weekday]float64                `json:"moodByDayOfWeek"`
	MoodByTimeOfDay       map[TimeOfDay]float64              `json:"moodByTimeOfDay"`
	ActivityEffectiveness map[Category]ActivityEffectiveness `json:"activityEffectiveness"`
}

// CorrelationType names one of the fixed activity/mood pairs
type CorrelationType string

const (
	CorrelationExerciseMood     CorrelationType = "exercise-mood"
	CorrelationMeditationMood   CorrelationType = "meditation-mood"
	CorrelationBreathingAnxiety CorrelationType = "breathing-anxiety"
)

// Correlation is a reported finding between daily activity and mood
type Correlation struct {
	Type        CorrelationType `json:"type"`
	Correlation float64         `json:"correlation"`
	Strength    Strength        `json:"strength"`
	Message     string          `json:"message"`
	SampleDays  int             `json:"sampleDays"`
}

// FrequencyTrend compares a category's volume this week with last week
type FrequencyTrend struct {
	Trend         Trend   `json:"trend"`
	ThisWeek      int     `json:"thisWeek"`
	LastWeek      int     `json:"lastWeek"`
	ChangePercent float64 `json:"changePercent"`
}

// Trends holds the week-over-week directions
type Trends struct {
	Mood              Trend                       `json:"mood"`
	ActivityFrequency map[Category]FrequencyTrend `json:"activityFrequency"`
	WellnessScore     Trend                       `json:"wellnessScore"`
}

// Recommendation is a suggested next step; Components names UI surfaces the
// caller may navigate to
type Recommendation struct {
	Type        string   `json:"type"`
	Priority    Priority `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
	Components  []string `json:"components"`
}

// TodaysFocus is the single suggested action for today
type TodaysFocus struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Component     string   `json:"component"`
	Priority      Priority `json:"priority"`
	EstimatedTime string   `json:"estimatedTime"`
}

// WellnessInsights is the full analytics bundle for one window. It is
// recomputed on every request and never persisted.
type WellnessInsights struct {
	WindowDays      int              `json:"windowDays"`
	ComputedAt      time.Time        `json:"computedAt"`
	Overview        Overview         `json:"overview"`
	Patterns        Patterns         `json:"patterns"`
	Correlations    []Correlation    `json:"correlations"`
	Trends          Trends           `json:"trends"`
	Recommendations []Recommendation `json:"recommendations"`
}
