package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// FileRepository stores every category in one JSON document keyed by the
// category's storage key, the same shape a browser's local storage export
// has. The document is re-read on every call so external edits are seen.
type FileRepository struct {
	path string
	loc  *time.Location
	mu   sync.RWMutex
}

// NewFileRepository creates a repository backed by the document at path.
// The file is created lazily on first append. Zone-less timestamps in the
// document are read in loc.
func NewFileRepository(path string, loc *time.Location) (*FileRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("file storage requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileRepository{path: path, loc: loc}, nil
}

func (r *FileRepository) Backend() string { return "file" }

func (r *FileRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.ActivityRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	r.mu.RLock()
	doc, err := r.readDocument()
	r.mu.RUnlock()
	if err != nil {
		return nil, readError(r.Backend(), category, err)
	}

	return models.DecodeRecords(category, doc[category.StorageKey()], r.loc), nil
}

func (r *FileRepository) Append(ctx context.Context, record models.ActivityRecord) error {
	category := record.Category()
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return writeError(r.Backend(), category, err)
	}

	var items []json.RawMessage
	if existing := doc[category.StorageKey()]; len(existing) > 0 {
		// A corrupt collection is replaced rather than appended to
		if err := json.Unmarshal(existing, &items); err != nil {
			items = nil
		}
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return writeError(r.Backend(), category, err)
	}
	items = append(items, encoded)

	collection, err := json.Marshal(items)
	if err != nil {
		return writeError(r.Backend(), category, err)
	}
	doc[category.StorageKey()] = collection

	if err := r.writeDocument(doc); err != nil {
		return writeError(r.Backend(), category, err)
	}
	return nil
}

func (r *FileRepository) Close() error { return nil }

// readDocument returns an empty document when the file is missing or is not
// a JSON object
func (r *FileRepository) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}

	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return map[string]json.RawMessage{}, nil
	}
	return doc, nil
}

func (r *FileRepository) writeDocument(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".wellspring-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}
