package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
	"github.com/JonnyWalker81/wellspring/backend/internal/observability"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
)

// ErrInvalidPayload is returned when a logged record cannot be decoded or
// fails validation
var ErrInvalidPayload = errors.New("invalid activity payload")

// ImportResult summarises a bulk import
type ImportResult struct {
	Imported    map[models.Category]int `json:"imported"`
	Total       int                     `json:"total"`
	SkippedKeys []string                `json:"skippedKeys"`
}

type activityService struct {
	store repository.RecordStore
	loc   *time.Location
	now   func() time.Time
}

// NewActivityService creates a new activity logging service. Zone-less
// timestamps in logged or imported payloads are read in loc.
func NewActivityService(store repository.RecordStore, loc *time.Location) ActivityService {
	return newActivityService(store, loc, time.Now)
}

func newActivityService(store repository.RecordStore, loc *time.Location, now func() time.Time) *activityService {
	return &activityService{store: store, loc: loc, now: now}
}

func (s *activityService) LogActivity(ctx context.Context, category models.Category, payload []byte) (models.ActivityRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", repository.ErrUnknownCategory, category)
	}
	ctx = logger.WithOperation(ctx, "log_activity")
	ctx = logger.WithCategory(ctx, string(category))

	record, err := models.DecodeRecord(category, payload, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if mood, ok := record.(models.MoodEntry); ok && (mood.Mood < 1 || mood.Mood > 10) {
		return nil, fmt.Errorf("%w: mood must be between 1 and 10", ErrInvalidPayload)
	}

	now := s.now()
	id := record.RecordID()
	if id == "" {
		id, err = NewRecordID()
		if err != nil {
			return nil, err
		}
	} else if err := ValidateRecordID(id, now); err != nil {
		return nil, err
	}
	record = models.WithDefaults(record, id, now)

	if err := s.store.Append(ctx, record); err != nil {
		observability.RecordStorageError(s.store.Backend())
		return nil, fmt.Errorf("failed to log %s activity: %w", category, err)
	}

	observability.RecordActivityLogged(string(category))
	logger.Ctx(ctx).Info("activity logged", logger.String("record_id", record.RecordID()))

	return record, nil
}

func (s *activityService) ListActivities(ctx context.Context, category models.Category) ([]models.ActivityRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", repository.ErrUnknownCategory, category)
	}

	records, err := s.store.GetByCategory(ctx, category)
	if err != nil {
		observability.RecordStorageError(s.store.Backend())
		return nil, fmt.Errorf("failed to list %s activities: %w", category, err)
	}

	models.SortByTime(records)
	return records, nil
}

// ImportDocument appends every decodable record of a browser storage dump:
// a JSON object keyed by storage key ("wellness_mood") or category name.
// Existing IDs are kept so re-importing into a SQL backend is a no-op.
func (s *activityService) ImportDocument(ctx context.Context, document []byte) (*ImportResult, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("%w: import document must be a JSON object: %v", ErrInvalidPayload, err)
	}

	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ctx = logger.WithOperation(ctx, "import")
	result := &ImportResult{
		Imported:    make(map[models.Category]int),
		SkippedKeys: []string{},
	}

	for _, key := range keys {
		category, err := models.ParseCategory(key)
		if err != nil {
			result.SkippedKeys = append(result.SkippedKeys, key)
			continue
		}

		for _, record := range models.DecodeRecords(category, doc[key], s.loc) {
			if record.RecordID() == "" {
				id, err := NewRecordID()
				if err != nil {
					return result, err
				}
				record = models.WithDefaults(record, id, time.Time{})
			}

			if err := s.store.Append(ctx, record); err != nil {
				observability.RecordStorageError(s.store.Backend())
				logger.Ctx(logger.WithCategory(ctx, string(category))).Warn("import aborted",
					logger.Backend(s.store.Backend()),
					logger.Int("imported", result.Total),
				)
				return result, fmt.Errorf("failed to import %s records: %w", category, err)
			}
			result.Imported[category]++
			result.Total++
		}
		observability.RecordActivityLoggedN(string(category), result.Imported[category])
	}

	logger.Ctx(ctx).Info("import complete",
		logger.Int("total", result.Total),
		logger.Int("skipped_keys", len(result.SkippedKeys)),
	)
	return result, nil
}
