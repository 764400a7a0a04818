package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
)

// ServiceTypeRepository is an in-memory service type repository.
type ServiceTypeRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]entity.ServiceType
}

// NewServiceTypeRepository constructs a repository.
func NewServiceTypeRepository() *ServiceTypeRepository {
	return &ServiceTypeRepository{data: make(map[uuid.UUID]entity.ServiceType)}
}

func (r *ServiceTypeRepository) Create(ctx context.Context, st *entity.ServiceType) error {
	_ = ctx
	ensureID(&st.ID)
	stamp(&st.CreatedAt)
	st.UpdatedAt = st.CreatedAt
	r.mu.Lock()
	r.data[st.ID] = *st
	r.mu.Unlock()
	return nil
}

func (r *ServiceTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *ServiceTypeRepository) GetByName(ctx context.Context, name string) (*entity.ServiceType, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, st := range r.data {
		if strings.EqualFold(st.Name, name) {
			return &st, nil
		}
	}
	return nil, nil
}

func (r *ServiceTypeRepository) Update(ctx context.Context, st *entity.ServiceType) error {
	_ = ctx
	st.UpdatedAt = time.Now()
	r.mu.Lock()
	r.data[st.ID] = *st
	r.mu.Unlock()
	return nil
}

func (r *ServiceTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	r.mu.Lock()
	delete(r.data, id)
	r.mu.Unlock()
	return nil
}

func (r *ServiceTypeRepository) List(ctx context.Context, activeOnly bool) ([]entity.ServiceType, error) {
	_ = ctx
	r.mu.RLock()
	out := make([]entity.ServiceType, 0, len(r.data))
	for _, st := range r.data {
		if activeOnly && st.Status != enum.StatusActive {
			continue
		}
		out = append(out, st)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ServiceRepository is an in-memory billable service repository.
type ServiceRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]entity.Service
}

// NewServiceRepository constructs a repository.
func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{data: make(map[uuid.UUID]entity.Service)}
}

func (r *ServiceRepository) Create(ctx context.Context, svc *entity.Service) error {
	_ = ctx
	ensureID(&svc.ID)
	stamp(&svc.CreatedAt)
	svc.UpdatedAt = svc.CreatedAt
	r.mu.Lock()
	r.data[svc.ID] = *svc
	r.mu.Unlock()
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc *entity.Service) error {
	_ = ctx
	svc.UpdatedAt = time.Now()
	r.mu.Lock()
	r.data[svc.ID] = *svc
	r.mu.Unlock()
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	r.mu.Lock()
	delete(r.data, id)
	r.mu.Unlock()
	return nil
}

func (r *ServiceRepository) List(ctx context.Context, filter *domainRepo.ServiceFilterParams) ([]entity.Service, int64, error) {
	_ = ctx
	r.mu.RLock()
	matched := make([]entity.Service, 0, len(r.data))
	for _, svc := range r.data {
		if !containsFold(filter.Search, svc.Description, svc.TypeName) {
			continue
		}
		if filter.TypeID != nil && (svc.TypeID == nil || *svc.TypeID != *filter.TypeID) {
			continue
		}
		if filter.Status != nil && svc.Status != *filter.Status {
			continue
		}
		matched = append(matched, svc)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].Description < matched[j].Description })
	return page(matched, filter.Pagination), int64(len(matched)), nil
}

func (r *ServiceRepository) CountByType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, svc := range r.data {
		if svc.TypeID != nil && *svc.TypeID == typeID {
			n++
		}
	}
	return n, nil
}
