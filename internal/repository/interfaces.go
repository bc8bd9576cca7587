package repository

import (
	"context"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// RecordRepository is the read side of activity storage. Implementations
// return an empty slice for a category that has never been written or whose
// stored collection cannot be decoded; only a failing backend is an error.
type RecordRepository interface {
	GetByCategory(ctx context.Context, category models.Category) ([]models.ActivityRecord, error)
}

// RecordWriter appends records to a category
type RecordWriter interface {
	Append(ctx context.Context, record models.ActivityRecord) error
}

// RecordStore is a backend that can both read and append
type RecordStore interface {
	RecordRepository
	RecordWriter
	// Backend names the storage driver, used in errors and metrics
	Backend() string
	Close() error
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Get retrieves an existing idempotency record if it exists
	Get(ctx context.Context, key, route, clientID string) (*models.IdempotencyKey, error)

	// Store saves a new idempotency record
	Store(ctx context.Context, key, route, clientID string, responseBody []byte, statusCode int) error
}
