package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses of create requests,
// keyed by client key and operator.
type IdempotencyRepository interface {
	// Get returns the stored entry, nil when absent.
	Get(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Purge removes entries that expired before now and reports how many.
	Purge(ctx context.Context, now time.Time) (int64, error)
}
