package models

import (
	"sort"
	"time"
)

// Snapshot holds every category's records as read at one point in time
type Snapshot map[Category][]ActivityRecord

// NewSnapshot returns a snapshot with an empty collection for every category
func NewSnapshot() Snapshot {
	s := make(Snapshot, len(AllCategories))
	for _, c := range AllCategories {
		s[c] = []ActivityRecord{}
	}
	return s
}

// Records returns the records of one category, never nil
func (s Snapshot) Records(c Category) []ActivityRecord {
	if recs, ok := s[c]; ok && recs != nil {
		return recs
	}
	return []ActivityRecord{}
}

// Count returns the number of records in one category
func (s Snapshot) Count(c Category) int {
	return len(s[c])
}

// Total returns the number of records across all categories
func (s Snapshot) Total() int {
	total := 0
	for _, c := range AllCategories {
		total += len(s[c])
	}
	return total
}

// MoodEntries returns the typed mood records. Records stored under the mood
// category that are not mood entries are ignored.
func (s Snapshot) MoodEntries() []MoodEntry {
	recs := s[CategoryMood]
	entries := make([]MoodEntry, 0, len(recs))
	for _, r := range recs {
		if m, ok := r.(MoodEntry); ok {
			entries = append(entries, m)
		}
	}
	return entries
}

// Filter returns a new snapshot containing the records that satisfy keep.
// The receiver is not modified.
func (s Snapshot) Filter(keep func(ActivityRecord) bool) Snapshot {
	out := NewSnapshot()
	for _, c := range AllCategories {
		filtered := make([]ActivityRecord, 0, len(s[c]))
		for _, r := range s[c] {
			if keep(r) {
				filtered = append(filtered, r)
			}
		}
		out[c] = filtered
	}
	return out
}

// SortByTime sorts records ascending by temporal key, in place
func SortByTime(records []ActivityRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].OccurredAt().Before(records[j].OccurredAt())
	})
}

// SortMoodEntries sorts mood entries ascending by timestamp, in place
func SortMoodEntries(entries []MoodEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
}

// DateKey formats t as a calendar date in loc
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
