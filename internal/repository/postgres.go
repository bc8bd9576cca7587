package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS activity_records (
	id          TEXT PRIMARY KEY,
	category    TEXT NOT NULL,
	occurred_at TIMESTAMPTZ,
	payload     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_activity_records_category ON activity_records (category, occurred_at);
`

// PostgresRepository provides Postgres-backed persistence for activity records
type PostgresRepository struct {
	pool *pgxpool.Pool
	loc  *time.Location

	mu      sync.Mutex
	entropy *rand.Rand
}

// NewPostgresRepository connects to dsn and ensures the schema exists
func NewPostgresRepository(ctx context.Context, dsn string, loc *time.Location) (*PostgresRepository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres storage requires a dsn")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &PostgresRepository{
		pool:    pool,
		loc:     loc,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (r *PostgresRepository) Backend() string { return "postgres" }

func (r *PostgresRepository) newID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String()
}

func (r *PostgresRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.ActivityRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	const query = `SELECT payload FROM activity_records WHERE category = $1 ORDER BY occurred_at NULLS FIRST, created_at`

	rows, err := r.pool.Query(ctx, query, string(category))
	if err != nil {
		return nil, readError(r.Backend(), category, err)
	}
	defer rows.Close()

	records := make([]models.ActivityRecord, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, readError(r.Backend(), category, err)
		}
		rec, err := models.DecodeRecord(category, payload, r.loc)
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

func (r *PostgresRepository) Append(ctx context.Context, record models.ActivityRecord) error {
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

	var occurredAt *time.Time
	if t := record.OccurredAt(); !t.IsZero() {
		occurredAt = &t
	}

	const insert = `INSERT INTO activity_records (id, category, occurred_at, payload)
        VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, insert, record.RecordID(), string(category), occurredAt, payload); err != nil {
		return writeError(r.Backend(), category, err)
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
