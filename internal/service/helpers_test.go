package service

import (
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
)

// testNow is a Friday afternoon
var testNow = time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC)

func fptr(f float64) *float64 { return &f }

func day(d, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 0, 0, 0, time.UTC)
}

func mood(at time.Time, value float64) models.MoodEntry {
	return models.MoodEntry{Timestamp: at, Mood: value}
}

func anxiousMood(at time.Time, value, anxiety float64) models.MoodEntry {
	return models.MoodEntry{Timestamp: at, Mood: value, Anxiety: fptr(anxiety)}
}

func practice(c models.Category, at time.Time) models.PracticeSession {
	return models.PracticeSession{Kind: c, CompletedAt: at, DurationMinutes: 5}
}

func exercise(at time.Time) models.ExerciseSession {
	return models.ExerciseSession{CompletedAt: at, Type: "run", DurationMinutes: 30}
}

func entry(c models.Category, at time.Time) models.Entry {
	return models.Entry{Kind: c, Timestamp: at}
}

func text(c models.Category, at time.Time, body string) models.TextEntry {
	return models.TextEntry{Kind: c, Date: at, Text: body}
}

// snapshotOf groups records by their category
func snapshotOf(records ...models.ActivityRecord) models.Snapshot {
	s := models.NewSnapshot()
	for _, r := range records {
		s[r.Category()] = append(s[r.Category()], r)
	}
	return s
}

func newTestService(now time.Time, records ...models.ActivityRecord) WellnessService {
	repo := repository.NewMemoryRepository(snapshotOf(records...))
	return NewWellnessService(repo,
		WithClock(func() time.Time { return now }),
		WithLocation(time.UTC),
	)
}
