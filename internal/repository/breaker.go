package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

// BreakerConfig holds the configuration for the storage circuit breaker
type BreakerConfig struct {
	// MaxFailures is the number of consecutive backend failures required to trip the circuit
	MaxFailures uint32
	// Timeout is how long the circuit stays open before allowing a probe
	Timeout time.Duration
}

// BreakerRepository wraps a RecordStore so that a failing backend is
// short-circuited instead of being hit on every request. Only storage
// failures count against the breaker; validation errors and requests the
// caller abandoned pass through.
type BreakerRepository struct {
	inner   RecordStore
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerRepository wraps inner with a circuit breaker
func NewBreakerRepository(inner RecordStore, cfg BreakerConfig, log logger.Logger) *BreakerRepository {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        inner.Backend(),
		MaxRequests: 1,
		Interval:    0, // Don't clear counts periodically
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			return !IsStorageError(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if log != nil {
				log.Warn("storage circuit breaker state changed",
					logger.Backend(name),
					logger.String("from", from.String()),
					logger.String("to", to.String()),
				)
			}
		},
	}

	return &BreakerRepository{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (r *BreakerRepository) Backend() string { return r.inner.Backend() }

// State returns "closed", "open" or "half-open"
func (r *BreakerRepository) State() string {
	return r.breaker.State().String()
}

func (r *BreakerRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.ActivityRecord, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.inner.GetByCategory(ctx, category)
	})
	if err != nil {
		return nil, r.translate("read", category, err)
	}
	return result.([]models.ActivityRecord), nil
}

func (r *BreakerRepository) Append(ctx context.Context, record models.ActivityRecord) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.inner.Append(ctx, record)
	})
	if err != nil {
		return r.translate("write", record.Category(), err)
	}
	return nil
}

func (r *BreakerRepository) Close() error {
	return r.inner.Close()
}

func (r *BreakerRepository) translate(op string, category models.Category, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &StorageError{Backend: r.Backend(), Op: op, Category: category, Err: ErrCircuitOpen}
	}
	return err
}
