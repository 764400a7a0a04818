package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
)

// CustomerRepository is an in-memory customer repository.
type CustomerRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]entity.Customer
}

// NewCustomerRepository constructs a repository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{data: make(map[uuid.UUID]entity.Customer)}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	_ = ctx
	ensureID(&customer.ID)
	stamp(&customer.CreatedAt)
	customer.UpdatedAt = customer.CreatedAt
	r.mu.Lock()
	r.data[customer.ID] = *customer
	r.mu.Unlock()
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepository) GetByRNC(ctx context.Context, rnc string) (*entity.Customer, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.data {
		if c.RNC != nil && *c.RNC == rnc {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	_ = ctx
	customer.UpdatedAt = time.Now()
	r.mu.Lock()
	r.data[customer.ID] = *customer
	r.mu.Unlock()
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	r.mu.Lock()
	delete(r.data, id)
	r.mu.Unlock()
	return nil
}

func (r *CustomerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	_ = ctx
	r.mu.RLock()
	matched := make([]entity.Customer, 0, len(r.data))
	for _, c := range r.data {
		if containsFold(search, c.Name, deref(c.RNC), deref(c.Phone), deref(c.Email)) {
			matched = append(matched, c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return page(matched, params), int64(len(matched)), nil
}
