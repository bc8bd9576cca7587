package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
	"github.com/JonnyWalker81/wellspring/backend/pkg/supabase"
)

const supabaseTable = "activity_records"

// supabaseRow mirrors the activity_records table
type supabaseRow struct {
	ID         string          `json:"id,omitempty"`
	Category   string          `json:"category"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// SupabaseRepository reads and writes records through PostgREST
type SupabaseRepository struct {
	client *supabase.Client
	loc    *time.Location
}

// NewSupabaseRepository creates a new Supabase-backed record repository
func NewSupabaseRepository(client *supabase.Client, loc *time.Location) *SupabaseRepository {
	return &SupabaseRepository{client: client, loc: loc}
}

func (r *SupabaseRepository) Backend() string { return "supabase" }

func (r *SupabaseRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.ActivityRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	// Use simple select without embedded resources to avoid schema cache issues
	query := map[string]string{
		"category": fmt.Sprintf("eq.%s", category),
		"select":   "payload",
		"order":    "occurred_at.asc.nullsfirst",
	}

	body, err := r.client.Query(ctx, supabaseTable, query)
	if err != nil {
		return nil, readError(r.Backend(), category, err)
	}

	var rows []supabaseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, readError(r.Backend(), category, fmt.Errorf("failed to unmarshal response: %w", err))
	}

	records := make([]models.ActivityRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := models.DecodeRecord(category, row.Payload, r.loc)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *SupabaseRepository) Append(ctx context.Context, record models.ActivityRecord) error {
	category := record.Category()
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return writeError(r.Backend(), category, err)
	}

	row := supabaseRow{
		ID:       record.RecordID(),
		Category: string(category),
		Payload:  payload,
	}
	if t := record.OccurredAt(); !t.IsZero() {
		row.OccurredAt = &t
	}

	if _, err := r.client.Insert(ctx, supabaseTable, row); err != nil {
		return writeError(r.Backend(), category, err)
	}
	return nil
}

func (r *SupabaseRepository) Close() error { return nil }
