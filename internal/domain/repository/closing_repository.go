package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
)

// ErrStaleClosing is returned by CreateIfLatest when another closing was
// recorded after the one the new closing was computed from.
var ErrStaleClosing = errors.New("closing: a newer closing has been recorded")

// ClosingRepository defines the interface for cash closing records.
// Records are append-only.
type ClosingRepository interface {
	Create(ctx context.Context, closing *entity.CashClosing) error
	// CreateIfLatest writes closing only while the most recent record is
	// still expectedPriorID (nil meaning "no closings yet").
	CreateIfLatest(ctx context.Context, closing *entity.CashClosing, expectedPriorID *uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashClosing, error)
	// GetLatest returns the most recent closing, nil when there is none.
	GetLatest(ctx context.Context) (*entity.CashClosing, error)
	// ListRecent returns at most limit records, newest date first.
	ListRecent(ctx context.Context, limit int) ([]entity.CashClosing, error)
}
