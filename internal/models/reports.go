package models

import "time"

// HealthcareReport is a patient summary meant to be shared with a care
// provider. It carries raw notes and is not anonymised.
type HealthcareReport struct {
	GeneratedAt     time.Time        `json:"generatedAt"`
	ReportPeriod    string           `json:"reportPeriod"`
	Summary         PatientSummary   `json:"summary"`
	Trends          Trends           `json:"trends"`
	Correlations    []string         `json:"correlations"`
	ActivityCounts  map[Category]int `json:"activityCounts"`
	Recommendations []Recommendation `json:"recommendations"`
	RecentMoods     []MoodLogEntry   `json:"recentMoods"`
}

// PatientSummary holds the headline figures of a healthcare report
type PatientSummary struct {
	TotalActivities int     `json:"totalActivities"`
	ActiveDays      int     `json:"activeDays"`
	AverageMood     float64 `json:"averageMood"`
	CurrentStreak   int     `json:"currentStreak"`
	BestStreak      int     `json:"bestStreak"`
	WellnessScore   int     `json:"wellnessScore"`
}

// MoodLogEntry is one mood check-in as shown to a care provider
type MoodLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Mood      float64   `json:"mood"`
	Anxiety   *float64  `json:"anxiety,omitempty"`
	Energy    *float64  `json:"energy,omitempty"`
	Notes     string    `json:"notes"`
}

// ResearchReport is an anonymised view: counts and shapes only, with no
// identifiers and no free text
type ResearchReport struct {
	DataPeriod    string                `json:"dataPeriod"`
	Metrics       ResearchMetrics       `json:"metrics"`
	Patterns      ResearchPatterns      `json:"patterns"`
	Trends        ResearchTrends        `json:"trends"`
	Correlations  []ResearchCorrelation `json:"correlations"`
	Effectiveness ResearchEffectiveness `json:"effectiveness"`
}

// ResearchMetrics are the aggregate counts of a research export
type ResearchMetrics struct {
	TotalActivities int              `json:"totalActivities"`
	ActiveDays      int              `json:"activeDays"`
	AverageMood     float64          `json:"averageMood"`
	BestStreak      int              `json:"bestStreak"`
	WellnessScore   int              `json:"wellnessScore"`
	ActivityCounts  map[Category]int `json:"activityCounts"`
}

// ResearchPatterns are the distribution shapes of a research export
type ResearchPatterns struct {
	DailyActivity   map[Weekday]int       `json:"dailyActivity"`
	MoodByDayOfWeek map[Weekday]float64   `json:"moodByDayOfWeek"`
	MoodByTimeOfDay map[TimeOfDay]float64 `json:"moodByTimeOfDay"`
}

// ResearchTrends are trend directions without the underlying counts
type ResearchTrends struct {
	Mood              Trend              `json:"mood"`
	ActivityFrequency map[Category]Trend `json:"activityFrequency"`
	WellnessScore     Trend              `json:"wellnessScore"`
}

// ResearchCorrelation is a correlation finding without its message
type ResearchCorrelation struct {
	Type        CorrelationType `json:"type"`
	Correlation float64         `json:"correlation"` // two decimals
	Strength    Strength        `json:"strength"`
}

// ResearchEffectiveness holds three coarse effectiveness signals
type ResearchEffectiveness struct {
	BreathingReducesStress bool    `json:"breathingReducesStress"`
	MeditationImprovesMood bool    `json:"meditationImprovesMood"`
	ExerciseMoodImpact     float64 `json:"exerciseMoodImpact"`
}
