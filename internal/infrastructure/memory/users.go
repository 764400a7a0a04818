package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
)

// UserRepository is an in-memory user repository.
type UserRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]entity.User
}

// NewUserRepository constructs a repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{data: make(map[uuid.UUID]entity.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.data {
		if strings.EqualFold(u.Username, user.Username) {
			return apperror.NewConflictError("username already exists")
		}
	}
	ensureID(&user.ID)
	stamp(&user.CreatedAt)
	user.UpdatedAt = user.CreatedAt
	r.data[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.data {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	user.UpdatedAt = time.Now()
	r.data[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	r.mu.Lock()
	delete(r.data, id)
	r.mu.Unlock()
	return nil
}

func (r *UserRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	_ = ctx
	r.mu.RLock()
	matched := make([]entity.User, 0, len(r.data))
	for _, u := range r.data {
		if containsFold(search, u.Username, u.DisplayName) {
			matched = append(matched, u)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })
	return page(matched, params), int64(len(matched)), nil
}
