package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
	"github.com/JonnyWalker81/wellspring/backend/internal/observability"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
)

// loadSnapshot reads every category once. Records without a usable temporal
// key are kept in the snapshot; the window filter drops them later.
func loadSnapshot(ctx context.Context, repo repository.RecordRepository) (models.Snapshot, error) {
	log := logger.Ctx(ctx)
	snapshot := models.NewSnapshot()

	for _, category := range models.AllCategories {
		records, err := repo.GetByCategory(ctx, category)
		if err != nil {
			var se *repository.StorageError
			if errors.As(err, &se) {
				observability.RecordStorageError(se.Backend)
			}
			return nil, fmt.Errorf("failed to load %s records: %w", category, err)
		}
		if records == nil {
			records = []models.ActivityRecord{}
		}
		snapshot[category] = records

		if !log.Enabled(logger.LevelDebug) {
			continue
		}
		if undated := countUndated(records); undated > 0 {
			log.Debug("records without a usable timestamp are excluded from analytics",
				logger.Category(string(category)),
				logger.Int("count", undated),
			)
		}
	}

	return snapshot, nil
}

func countUndated(records []models.ActivityRecord) int {
	n := 0
	for _, r := range records {
		if r.OccurredAt().IsZero() {
			n++
		}
	}
	return n
}
