package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// MemoryRepository keeps records in process memory. It backs the "memory"
// storage driver and serves as the test double for the analytics service.
type MemoryRepository struct {
	mu      sync.RWMutex
	records models.Snapshot
	// Err, when set, is returned from every read
	Err error
}

// NewMemoryRepository creates a repository seeded with snapshot (may be nil)
func NewMemoryRepository(snapshot models.Snapshot) *MemoryRepository {
	records := models.NewSnapshot()
	for c, recs := range snapshot {
		records[c] = append([]models.ActivityRecord(nil), recs...)
	}
	return &MemoryRepository{records: records}
}

func (r *MemoryRepository) Backend() string { return "memory" }

func (r *MemoryRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.ActivityRecord, error) {
	if r.Err != nil {
		return nil, readError(r.Backend(), category, r.Err)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ActivityRecord, len(r.records[category]))
	copy(out, r.records[category])
	return out, nil
}

func (r *MemoryRepository) Append(ctx context.Context, record models.ActivityRecord) error {
	category := record.Category()
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[category] = append(r.records[category], record)
	return nil
}

func (r *MemoryRepository) Close() error { return nil }
