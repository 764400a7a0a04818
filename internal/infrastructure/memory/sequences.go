package memory

import (
	"context"
	"sync"
)

// SequenceRepository is an in-memory numbering sequence repository.
type SequenceRepository struct {
	mu   sync.Mutex
	last map[string]int64
}

// NewSequenceRepository constructs a repository.
func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{last: make(map[string]int64)}
}

func (r *SequenceRepository) Next(ctx context.Context, series string) (int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last[series]++
	return r.last[series], nil
}

func (r *SequenceRepository) Current(ctx context.Context, series string) (int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last[series], nil
}

// stagedSequences hands out numbers without publishing them until commit.
// The caller holds parent.mu throughout.
type stagedSequences struct {
	parent  *SequenceRepository
	pending map[string]int64
}

func (s *stagedSequences) Next(ctx context.Context, series string) (int64, error) {
	v, _ := s.Current(ctx, series)
	s.pending[series] = v + 1
	return v + 1, nil
}

func (s *stagedSequences) Current(ctx context.Context, series string) (int64, error) {
	_ = ctx
	if v, ok := s.pending[series]; ok {
		return v, nil
	}
	return s.parent.last[series], nil
}

func (s *stagedSequences) commit() {
	for series, v := range s.pending {
		s.parent.last[series] = v
	}
}
