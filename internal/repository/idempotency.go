package repository

import (
	"context"
	"sync"
	"time"

	"github.com/JonnyWalker81/wellspring/backend/internal/models"
)

type idempotencyEntry struct {
	key     models.IdempotencyKey
	expires time.Time
}

type idempotencyRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]idempotencyEntry
}

// NewIdempotencyRepository creates an in-process idempotency store whose
// entries expire after ttl
func NewIdempotencyRepository(ttl time.Duration) IdempotencyRepository {
	return newIdempotencyRepository(ttl, time.Now)
}

func newIdempotencyRepository(ttl time.Duration, now func() time.Time) *idempotencyRepository {
	return &idempotencyRepository{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]idempotencyEntry),
	}
}

func idempotencyMapKey(key, route, clientID string) string {
	return clientID + "|" + route + "|" + key
}

func (r *idempotencyRepository) Get(ctx context.Context, key, route, clientID string) (*models.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := idempotencyMapKey(key, route, clientID)
	entry, ok := r.entries[k]
	if !ok {
		return nil, nil // Not found - this is not an error
	}
	if r.now().After(entry.expires) {
		delete(r.entries, k)
		return nil, nil
	}

	stored := entry.key
	return &stored, nil
}

func (r *idempotencyRepository) Store(ctx context.Context, key, route, clientID string, responseBody []byte, statusCode int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	r.entries[idempotencyMapKey(key, route, clientID)] = idempotencyEntry{
		key: models.IdempotencyKey{
			Key:          key,
			Route:        route,
			ClientID:     clientID,
			ResponseBody: append([]byte(nil), responseBody...),
			StatusCode:   statusCode,
			CreatedAt:    now,
		},
		expires: now.Add(r.ttl),
	}
	return nil
}

// sweep drops expired entries; caller holds mu
func (r *idempotencyRepository) sweep(now time.Time) {
	for k, e := range r.entries {
		if now.After(e.expires) {
			delete(r.entries, k)
		}
	}
}
