package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
)

type idempotencyKey struct {
	key    string
	userID uuid.UUID
}

// IdempotencyRepository is an in-memory idempotency key repository.
type IdempotencyRepository struct {
	mu   sync.RWMutex
	data map[idempotencyKey]entity.IdempotencyKey
}

// NewIdempotencyRepository constructs a repository.
func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{data: make(map[idempotencyKey]entity.IdempotencyKey)}
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	ikey, ok := r.data[idempotencyKey{key, userID}]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *IdempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	_ = ctx
	k := idempotencyKey{ikey.Key, ikey.UserID}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[k]; exists {
		return nil
	}
	ensureID(&ikey.ID)
	stamp(&ikey.CreatedAt)
	r.data[k] = *ikey
	return nil
}

func (r *IdempotencyRepository) Purge(ctx context.Context, now time.Time) (int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, v := range r.data {
		if v.IsExpired(now) {
			delete(r.data, k)
			n++
		}
	}
	return n, nil
}
