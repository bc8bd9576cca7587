package service

import (
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// filterWindow keeps records whose temporal key is strictly after
// now - days. Undated records never pass.
func filterWindow(snapshot models.Snapshot, days int, now time.Time) models.Snapshot {
	cutoff := now.AddDate(0, 0, -days)
	return snapshot.Filter(func(r models.ActivityRecord) bool {
		t := r.OccurredAt()
		return !t.IsZero() && t.After(cutoff)
	})
}

// filterRange keeps records with from < t <= to
func filterRange(snapshot models.Snapshot, from, to time.Time) models.Snapshot {
	return snapshot.Filter(func(r models.ActivityRecord) bool {
		t := r.OccurredAt()
		return !t.IsZero() && t.After(from) && !t.After(to)
	})
}
