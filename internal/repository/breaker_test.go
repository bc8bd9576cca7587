package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

func TestBreakerRepository_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := NewMemoryRepository(nil)
	inner.Err = errors.New("disk on fire")
	repo := NewBreakerRepository(inner, BreakerConfig{MaxFailures: 2, Timeout: time.Minute}, logger.Discard())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.GetByCategory(ctx, models.CategoryMood)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}
	assert.Equal(t, "open", repo.State())

	_, err := repo.GetByCategory(ctx, models.CategoryMood)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.True(t, IsStorageError(err))

	err = repo.Append(ctx, models.MoodEntry{Mood: 5})
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreakerRepository_CanceledRequestsDoNotTrip(t *testing.T) {
	inner := NewMemoryRepository(nil)
	inner.Err = context.Canceled
	repo := NewBreakerRepository(inner, BreakerConfig{MaxFailures: 1, Timeout: time.Minute}, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 3; i++ {
		_, err := repo.GetByCategory(ctx, models.CategoryMood)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, IsStorageError(err))
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}
	assert.Equal(t, "closed", repo.State())

	inner.Err = errors.New("connection reset")
	_, err := repo.GetByCategory(context.Background(), models.CategoryMood)
	require.Error(t, err)
	assert.Equal(t, "open", repo.State())
}

func TestBreakerRepository_ValidationErrorsDoNotTrip(t *testing.T) {
	repo := NewBreakerRepository(NewMemoryRepository(nil), BreakerConfig{MaxFailures: 1}, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.GetByCategory(ctx, models.Category("sleep"))
		assert.ErrorIs(t, err, ErrUnknownCategory)
	}
	assert.Equal(t, "closed", repo.State())

	require.NoError(t, repo.Append(ctx, models.MoodEntry{ID: "m1", Mood: 6}))
	recs, err := repo.GetByCategory(ctx, models.CategoryMood)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, "memory", repo.Backend())
}
