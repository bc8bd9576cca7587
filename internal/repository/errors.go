package repository

import (
	"errors"
	"fmt"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

var (
	// ErrUnknownCategory is returned when a record names a category outside the fixed set
	ErrUnknownCategory = errors.New("unknown category")
	// ErrCircuitOpen is returned while the storage circuit breaker rejects calls
	ErrCircuitOpen = errors.New("storage circuit breaker is open")
)

// StorageError reports a failed read or write against a backend
type StorageError struct {
	Backend  string
	Op       string // "read" or "write"
	Category models.Category
	Err      error
}

func (e *StorageError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("%s storage %s failed: %v", e.Backend, e.Op, e.Err)
	}
	return fmt.Sprintf("%s storage %s of %s failed: %v", e.Backend, e.Op, e.Category, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func readError(backend string, category models.Category, err error) error {
	return &StorageError{Backend: backend, Op: "read", Category: category, Err: err}
}

func writeError(backend string, category models.Category, err error) error {
	return &StorageError{Backend: backend, Op: "write", Category: category, Err: err}
}

// IsStorageError reports whether err wraps a StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
