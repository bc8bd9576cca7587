package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// temporalFallbacks is the lookup order used after a variant's preferred key
var temporalFallbacks = []string{"timestamp", "completedAt", "date", "createdAt"}

// layouts accepted for string timestamps, in order
var layouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02", true},
}

// DecodeRecord decodes one loosely-typed JSON object into the variant for
// category. Missing or malformed fields degrade to zero values; only a
// payload that is not a JSON object is an error. Timestamps written without
// a zone are read as wall-clock time in loc (time.Local when nil).
func DecodeRecord(category Category, raw []byte, loc *time.Location) (ActivityRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", category, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("decode %s record: not an object", category)
	}

	return decodeObject(category, obj, orLocal(loc)), nil
}

// DecodeRecords decodes a JSON array of records. A payload that is not an
// array decodes to an empty slice and elements that are not objects are
// skipped, matching how a corrupt local collection reads back as empty.
func DecodeRecords(category Category, data []byte, loc *time.Location) []ActivityRecord {
	if !category.Valid() || len(data) == 0 {
		return []ActivityRecord{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return []ActivityRecord{}
	}

	records := make([]ActivityRecord, 0, len(items))
	for _, item := range items {
		rec, err := DecodeRecord(category, item, loc)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// EncodeRecords is the inverse of DecodeRecords
func EncodeRecords(records []ActivityRecord) ([]byte, error) {
	if records == nil {
		records = []ActivityRecord{}
	}
	return json.Marshal(records)
}

func decodeObject(category Category, obj map[string]any, loc *time.Location) ActivityRecord {
	id := idField(obj)

	switch category {
	case CategoryMood:
		mood, _ := numberField(obj, "mood")
		return MoodEntry{
			ID:        id,
			Timestamp: temporalKey(obj, "timestamp", loc),
			Mood:      mood,
			Anxiety:   optionalNumber(obj, "anxiety"),
			Energy:    optionalNumber(obj, "energy"),
			Notes:     stringField(obj, "notes", "note"),
		}
	case CategoryGratitude, CategoryJournal, CategoryAffirmations:
		return TextEntry{
			Kind:   category,
			ID:     id,
			Date:   temporalKey(obj, "date", loc),
			Text:   textField(obj, "text", "content", "entry", "entries", "affirmation"),
			Prompt: stringField(obj, "prompt"),
		}
	case CategoryExercise:
		duration, _ := numberField(obj, "duration")
		return ExerciseSession{
			ID:              id,
			CompletedAt:     temporalKey(obj, "completedAt", loc),
			Type:            stringField(obj, "type", "exercise"),
			DurationMinutes: duration,
			PreMood:         optionalNumber(obj, "preMood"),
			PostMood:        optionalNumber(obj, "postMood"),
		}
	case CategoryBreathing, CategoryMeditation, CategoryGrounding, CategoryMindfulMovement,
		CategoryCopingToolkit, CategoryEmotionRegulation:
		duration, _ := numberField(obj, "duration")
		return PracticeSession{
			Kind:            category,
			ID:              id,
			CompletedAt:     temporalKey(obj, "completedAt", loc),
			Technique:       stringField(obj, "technique", "type", "name"),
			DurationMinutes: duration,
		}
	default:
		return Entry{
			Kind:      category,
			ID:        id,
			Timestamp: temporalKey(obj, "timestamp", loc),
		}
	}
}

// temporalKey reads the preferred key first, then the shared fallbacks
func temporalKey(obj map[string]any, preferred string, loc *time.Location) time.Time {
	if v, ok := obj[preferred]; ok {
		if t := ParseTimestamp(v, loc); !t.IsZero() {
			return t
		}
	}
	for _, key := range temporalFallbacks {
		if key == preferred {
			continue
		}
		if v, ok := obj[key]; ok {
			if t := ParseTimestamp(v, loc); !t.IsZero() {
				return t
			}
		}
	}
	return time.Time{}
}

// ParseTimestamp converts a loosely-typed temporal value into a time.
// Strings are tried against RFC 3339 and a few browser-style layouts;
// numbers are Unix milliseconds. Anything else yields the zero time.
// Layouts without a zone are resolved in loc.
func ParseTimestamp(v any, loc *time.Location) time.Time {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}
		}
		for _, l := range layouts {
			var (
				t   time.Time
				err error
			)
			if l.local {
				t, err = time.ParseInLocation(l.layout, s, orLocal(loc))
			} else {
				t, err = time.Parse(l.layout, s)
			}
			if err == nil {
				return t
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
			return time.UnixMilli(ms)
		}
	case float64:
		if val > 0 {
			return time.UnixMilli(int64(val))
		}
	case json.Number:
		if ms, err := val.Int64(); err == nil && ms > 0 {
			return time.UnixMilli(ms)
		}
	}
	return time.Time{}
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

func numberField(obj map[string]any, key string) (float64, bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func optionalNumber(obj map[string]any, key string) *float64 {
	f, ok := numberField(obj, key)
	if !ok {
		return nil
	}
	return &f
}

// idField accepts string IDs and the numeric Date.now()-style IDs
// browser clients generate
func idField(obj map[string]any) string {
	switch val := obj["id"].(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return ""
}

func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// textField also accepts a list of strings, which gratitude entries often
// store as several short lines
func textField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		switch val := obj[key].(type) {
		case string:
			if val != "" {
				return val
			}
		case []any:
			lines := make([]string, 0, len(val))
			for _, item := range val {
				if s, ok := item.(string); ok && s != "" {
					lines = append(lines, s)
				}
			}
			if len(lines) > 0 {
				return strings.Join(lines, "\n")
			}
		}
	}
	return ""
}

// WithDefaults returns a copy of rec with its ID and temporal key filled in
// when they are empty
func WithDefaults(rec ActivityRecord, id string, at time.Time) ActivityRecord {
	switch r := rec.(type) {
	case MoodEntry:
		if r.ID == "" {
			r.ID = id
		}
		if r.Timestamp.IsZero() {
			r.Timestamp = at
		}
		return r
	case TextEntry:
		if r.ID == "" {
			r.ID = id
		}
		if r.Date.IsZero() {
			r.Date = at
		}
		return r
	case ExerciseSession:
		if r.ID == "" {
			r.ID = id
		}
		if r.CompletedAt.IsZero() {
			r.CompletedAt = at
		}
		return r
	case PracticeSession:
		if r.ID == "" {
			r.ID = id
		}
		if r.CompletedAt.IsZero() {
			r.CompletedAt = at
		}
		return r
	case Entry:
		if r.ID == "" {
			r.ID = id
		}
		if r.Timestamp.IsZero() {
			r.Timestamp = at
		}
		return r
	}
	return rec
}
