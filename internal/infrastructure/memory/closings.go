package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
)

// ClosingRepository is an in-memory, append-only closing repository.
// Records are kept in insertion order; later inserts win date ties.
type ClosingRepository struct {
	mu   sync.RWMutex
	data []entity.CashClosing
}

// NewClosingRepository constructs a repository.
func NewClosingRepository() *ClosingRepository {
	return &ClosingRepository{}
}

func (r *ClosingRepository) Create(ctx context.Context, closing *entity.CashClosing) error {
	_ = ctx
	r.mu.Lock()
	r.insert(closing)
	r.mu.Unlock()
	return nil
}

func (r *ClosingRepository) CreateIfLatest(ctx context.Context, closing *entity.CashClosing, expectedPriorID *uuid.UUID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	latest := r.latest()
	switch {
	case latest == nil && expectedPriorID == nil:
	case latest != nil && expectedPriorID != nil && latest.ID == *expectedPriorID:
	default:
		return domainRepo.ErrStaleClosing
	}
	r.insert(closing)
	return nil
}

func (r *ClosingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashClosing, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.data {
		if c.ID == id {
			c = cloneClosing(c)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClosingRepository) GetLatest(ctx context.Context) (*entity.CashClosing, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest(), nil
}

func (r *ClosingRepository) ListRecent(ctx context.Context, limit int) ([]entity.CashClosing, error) {
	_ = ctx
	r.mu.RLock()
	out := r.sorted()
	r.mu.RUnlock()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ClosingRepository) insert(closing *entity.CashClosing) {
	ensureID(&closing.ID)
	stamp(&closing.CreatedAt)
	r.data = append(r.data, cloneClosing(*closing))
}

func (r *ClosingRepository) latest() *entity.CashClosing {
	out := r.sorted()
	if len(out) == 0 {
		return nil
	}
	return &out[0]
}

// sorted returns a copy ordered by date, then creation time, newest first.
func (r *ClosingRepository) sorted() []entity.CashClosing {
	out := make([]entity.CashClosing, len(r.data))
	for i, c := range r.data {
		out[len(r.data)-1-i] = cloneClosing(c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func cloneClosing(c entity.CashClosing) entity.CashClosing {
	if c.Notes != nil {
		notes := *c.Notes
		c.Notes = &notes
	}
	if c.OperatorID != nil {
		id := *c.OperatorID
		c.OperatorID = &id
	}
	if c.PriorClosingID != nil {
		id := *c.PriorClosingID
		c.PriorClosingID = &id
	}
	return c
}
