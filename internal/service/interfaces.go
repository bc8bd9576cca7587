package service

import (
	"context"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// WellnessService computes read-only analytics over the stored activity
// records. Every call reads a fresh snapshot; nothing is cached or written.
type WellnessService interface {
	GetWellnessInsights(ctx context.Context, days int) (*models.WellnessInsights, error)
	GetTodaysFocus(ctx context.Context) (*models.TodaysFocus, error)
	ExportHealthcareData(ctx context.Context) (*models.HealthcareReport, error)
	ExportResearchData(ctx context.Context) (*models.ResearchReport, error)
}

// ActivityService defines the interface for logging and listing activity records
type ActivityService interface {
	LogActivity(ctx context.Context, category models.Category, payload []byte) (models.ActivityRecord, error)
	ListActivities(ctx context.Context, category models.Category) ([]models.ActivityRecord, error)
	ImportDocument(ctx context.Context, document []byte) (*ImportResult, error)
}
