package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord_Mood(t *testing.T) {
	raw := []byte(`{"id":"m1","timestamp":"2024-01-05T09:30:00.000Z","mood":7,"anxiety":"4","notes":"slept well"}`)

	rec, err := DecodeRecord(CategoryMood, raw, nil)
	require.NoError(t, err)

	mood, ok := rec.(MoodEntry)
	require.True(t, ok, "expected MoodEntry, got %T", rec)
	assert.Equal(t, "m1", mood.RecordID())
	assert.Equal(t, 7.0, mood.Mood)
	require.NotNil(t, mood.Anxiety)
	assert.Equal(t, 4.0, *mood.Anxiety)
	assert.Nil(t, mood.Energy)
	assert.Equal(t, "slept well", mood.Notes)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC), mood.OccurredAt().UTC())
}

func TestDecodeRecord_TemporalKeyFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		raw      string
		want     time.Time
	}{
		{
			name:     "exercise uses completedAt",
			category: CategoryExercise,
			raw:      `{"completedAt":"2024-03-01T18:00:00Z","preMood":4,"postMood":7,"duration":30}`,
			want:     time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "gratitude falls back to timestamp",
			category: CategoryGratitude,
			raw:      `{"timestamp":"2024-03-02T08:00:00Z","entries":["sun","coffee"]}`,
			want:     time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "date-only string parses as midnight in the location",
			category: CategoryJournal,
			raw:      `{"date":"2024-03-03","content":"hello"}`,
			want:     time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "unix milliseconds",
			category: CategoryHabits,
			raw:      `{"createdAt":1709251200000}`,
			want:     time.UnixMilli(1709251200000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeRecord(tt.category, []byte(tt.raw), time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.category, rec.Category())
			assert.True(t, tt.want.Equal(rec.OccurredAt()), "want %v, got %v", tt.want, rec.OccurredAt())
		})
	}
}

func TestDecodeRecord_ZonelessTimestampUsesLocation(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	rec, err := DecodeRecord(CategoryMood, []byte(`{"timestamp":"2024-01-05T20:00:00","mood":7}`), newYork)
	require.NoError(t, err)
	got := rec.OccurredAt()
	assert.True(t, time.Date(2024, 1, 5, 20, 0, 0, 0, newYork).Equal(got), "got %v", got)
	assert.Equal(t, 20, got.In(newYork).Hour())

	rec, err = DecodeRecord(CategoryJournal, []byte(`{"date":"2024-01-05","content":"late"}`), newYork)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", DateKey(rec.OccurredAt(), newYork))

	// an explicit offset wins over the location
	rec, err = DecodeRecord(CategoryMood, []byte(`{"timestamp":"2024-01-05T20:00:00Z","mood":7}`), newYork)
	require.NoError(t, err)
	assert.Equal(t, 15, rec.OccurredAt().In(newYork).Hour())
}

func TestDecodeRecord_MalformedTimestampIsZero(t *testing.T) {
	rec, err := DecodeRecord(CategoryMeditation, []byte(`{"completedAt":"yesterday-ish"}`), nil)
	require.NoError(t, err)
	assert.True(t, rec.OccurredAt().IsZero())
}

func TestDecodeRecord_GratitudeJoinsEntries(t *testing.T) {
	rec, err := DecodeRecord(CategoryGratitude, []byte(`{"date":"2024-03-02","entries":["sun","","coffee"]}`), nil)
	require.NoError(t, err)

	entry := rec.(TextEntry)
	assert.Equal(t, "sun\ncoffee", entry.Text)
}

func TestDecodeRecord_RejectsNonObject(t *testing.T) {
	_, err := DecodeRecord(CategoryMood, []byte(`[1,2,3]`), nil)
	assert.Error(t, err)

	_, err = DecodeRecord(Category("music"), []byte(`{}`), nil)
	assert.Error(t, err)
}

func TestDecodeRecords_CorruptCollectionIsEmpty(t *testing.T) {
	assert.Empty(t, DecodeRecords(CategoryMood, []byte(`{"not":"an array"}`), nil))
	assert.Empty(t, DecodeRecords(CategoryMood, []byte(`not json`), nil))
	assert.Empty(t, DecodeRecords(CategoryMood, nil, nil))

	recs := DecodeRecords(CategoryMood, []byte(`[{"mood":5,"timestamp":"2024-01-01T10:00:00Z"}, 42, {"mood":6}]`), nil)
	assert.Len(t, recs, 2)
}

func TestEncodeRecords_RoundTrip(t *testing.T) {
	anxiety := 3.0
	records := []ActivityRecord{
		MoodEntry{ID: "a", Timestamp: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), Mood: 8, Anxiety: &anxiety, Notes: "ok"},
		MoodEntry{ID: "b", Timestamp: time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC), Mood: 6},
	}

	data, err := EncodeRecords(records)
	require.NoError(t, err)

	decoded := DecodeRecords(CategoryMood, data, nil)
	require.Len(t, decoded, 2)
	assert.Equal(t, records[0], decoded[0])
	assert.Equal(t, records[1], decoded[1])
}

func TestWithDefaults(t *testing.T) {
	at := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)

	rec := WithDefaults(PracticeSession{Kind: CategoryBreathing}, "new-id", at)
	assert.Equal(t, "new-id", rec.RecordID())
	assert.Equal(t, at, rec.OccurredAt())

	kept := WithDefaults(Entry{Kind: CategoryStats, ID: "keep", Timestamp: at.Add(-time.Hour)}, "new-id", at)
	assert.Equal(t, "keep", kept.RecordID())
	assert.Equal(t, at.Add(-time.Hour), kept.OccurredAt())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("mindfulMovement")
	require.NoError(t, err)
	assert.Equal(t, CategoryMindfulMovement, c)

	c, err = ParseCategory("wellness_copingToolkit")
	require.NoError(t, err)
	assert.Equal(t, CategoryCopingToolkit, c)

	_, err = ParseCategory("quiz")
	assert.Error(t, err)
}

func TestBucketKeysSerializeAsNames(t *testing.T) {
	data, err := json.Marshal(map[Weekday]int{Weekday(time.Sunday): 2, Weekday(time.Saturday): 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Sunday":2,"Saturday":1}`, string(data))

	data, err = json.Marshal(map[TimeOfDay]float64{Morning: 7.5, Evening: 6})
	require.NoError(t, err)
	assert.JSONEq(t, `{"morning":7.5,"evening":6}`, string(data))

	assert.Equal(t, Morning, TimeOfDayForHour(11))
	assert.Equal(t, Afternoon, TimeOfDayForHour(12))
	assert.Equal(t, Afternoon, TimeOfDayForHour(17))
	assert.Equal(t, Evening, TimeOfDayForHour(18))
}
