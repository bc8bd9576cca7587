package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS activity_records (
	id          TEXT PRIMARY KEY,
	category    TEXT NOT NULL,
	occurred_at TEXT,
	payload     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_records_category ON activity_records(category, occurred_at);
`

// SQLiteRepository stores records as JSON payloads in a single SQLite table
type SQLiteRepository struct {
	db  *sql.DB
	loc *time.Location

	mu      sync.Mutex
	entropy *rand.Rand
}

// NewSQLiteRepository opens or creates a SQLite database at the given path
func NewSQLiteRepository(dbPath string, loc *time.Location) (*SQLiteRepository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite storage requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		loc:     loc,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (r *SQLiteRepository) Backend() string { return "sqlite" }

func (r *SQLiteRepository) newID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String()
}

func (r *SQLiteRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.ActivityRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM activity_records WHERE category = ? ORDER BY occurred_at, created_at`,
		string(category))
	if err != nil {
		return nil, readError(r.Backend(), category, err)
	}
	defer rows.Close()

	records := make([]models.ActivityRecord, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, readError(r.Backend(), category, err)
		}
		rec, err := models.DecodeRecord(category, []byte(payload), r.loc)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, readError(r.Backend(), category, err)
	}

	return records, nil
}

func (r *SQLiteRepository) Append(ctx context.Context, record models.ActivityRecord) error {
	category := record.Category()
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	if record.RecordID() == "" {
		record = models.WithDefaults(record, r.newID(), time.Time{})
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return writeError(r.Backend(), category, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO activity_records (id, category, occurred_at, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.RecordID(),
		string(category),
		formatOccurredAt(record.OccurredAt()),
		string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return writeError(r.Backend(), category, err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// formatOccurredAt stores unusable timestamps as NULL so they sort first
func formatOccurredAt(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
