package models

import (
	"fmt"
	"time"
)

// Category identifies one of the fixed activity collections a user logs into
type Category string

const (
	CategoryMood              Category = "mood"
	CategoryGratitude         Category = "gratitude"
	CategoryBreathing         Category = "breathing"
	CategoryMeditation        Category = "meditation"
	CategoryCouples           Category = "couples"
	CategoryHabits            Category = "habits"
	CategoryJournal           Category = "journal"
	CategoryExercise          Category = "exercise"
	CategoryGrounding         Category = "grounding"
	CategoryMindfulMovement   Category = "mindfulMovement"
	CategoryAchievements      Category = "achievements"
	CategoryStats             Category = "stats"
	CategoryAffirmations      Category = "affirmations"
	CategoryCopingToolkit     Category = "copingToolkit"
	CategoryEmotionRegulation Category = "emotionRegulation"
)

// AllCategories lists every category in its canonical order
var AllCategories = []Category{
	CategoryMood,
	CategoryGratitude,
	CategoryBreathing,
	CategoryMeditation,
	CategoryCouples,
	CategoryHabits,
	CategoryJournal,
	CategoryExercise,
	CategoryGrounding,
	CategoryMindfulMovement,
	CategoryAchievements,
	CategoryStats,
	CategoryAffirmations,
	CategoryCopingToolkit,
	CategoryEmotionRegulation,
}

// storageKeyPrefix prefixes every category's key in document-style stores
const storageKeyPrefix = "wellness_"

// StorageKey returns the document key the category is persisted under
func (c Category) StorageKey() string {
	return storageKeyPrefix + string(c)
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts either a category name or its storage key
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c.Valid() {
		return c, nil
	}
	if len(s) > len(storageKeyPrefix) && s[:len(storageKeyPrefix)] == storageKeyPrefix {
		c = Category(s[len(storageKeyPrefix):])
		if c.Valid() {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ActivityRecord is a single logged user action. Every variant exposes its
// temporal key so windowing and streak logic can be written once.
type ActivityRecord interface {
	Category() Category
	RecordID() string
	// OccurredAt returns the zero time when the stored timestamp was missing
	// or could not be parsed.
	OccurredAt() time.Time
}

// MoodEntry is a mood check-in
type MoodEntry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Mood      float64   `json:"mood"`
	Anxiety   *float64  `json:"anxiety,omitempty"`
	Energy    *float64  `json:"energy,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

func (e MoodEntry) Category() Category    { return CategoryMood }
func (e MoodEntry) RecordID() string      { return e.ID }
func (e MoodEntry) OccurredAt() time.Time { return e.Timestamp }

// TextEntry is a free-text entry: gratitude, journal or affirmation
type TextEntry struct {
	Kind   Category  `json:"-"`
	ID     string    `json:"id,omitempty"`
	Date   time.Time `json:"date"`
	Text   string    `json:"text,omitempty"`
	Prompt string    `json:"prompt,omitempty"`
}

func (e TextEntry) Category() Category    { return e.Kind }
func (e TextEntry) RecordID() string      { return e.ID }
func (e TextEntry) OccurredAt() time.Time { return e.Date }

// ExerciseSession is a completed workout, optionally bracketed by mood ratings
type ExerciseSession struct {
	ID              string    `json:"id,omitempty"`
	CompletedAt     time.Time `json:"completedAt"`
	Type            string    `json:"type,omitempty"`
	DurationMinutes float64   `json:"duration,omitempty"`
	PreMood         *float64  `json:"preMood,omitempty"`
	PostMood        *float64  `json:"postMood,omitempty"`
}

func (e ExerciseSession) Category() Category    { return CategoryExercise }
func (e ExerciseSession) RecordID() string      { return e.ID }
func (e ExerciseSession) OccurredAt() time.Time { return e.CompletedAt }

// PracticeSession is a completed guided practice (breathing, meditation,
// grounding, mindful movement, coping or emotion-regulation exercise)
type PracticeSession struct {
	Kind            Category  `json:"-"`
	ID              string    `json:"id,omitempty"`
	CompletedAt     time.Time `json:"completedAt"`
	Technique       string    `json:"technique,omitempty"`
	DurationMinutes float64   `json:"duration,omitempty"`
}

func (e PracticeSession) Category() Category    { return e.Kind }
func (e PracticeSession) RecordID() string      { return e.ID }
func (e PracticeSession) OccurredAt() time.Time { return e.CompletedAt }

// Entry is a presence-only record; the engine only counts these
type Entry struct {
	Kind      Category  `json:"-"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e Entry) Category() Category    { return e.Kind }
func (e Entry) RecordID() string      { return e.ID }
func (e Entry) OccurredAt() time.Time { return e.Timestamp }
