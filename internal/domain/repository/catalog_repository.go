package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
)

// ServiceTypeRepository defines the interface for service type data operations
type ServiceTypeRepository interface {
	Create(ctx context.Context, st *entity.ServiceType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error)
	GetByName(ctx context.Context, name string) (*entity.ServiceType, error)
	Update(ctx context.Context, st *entity.ServiceType) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all types ordered by name, only active ones when activeOnly is set.
	List(ctx context.Context, activeOnly bool) ([]entity.ServiceType, error)
}

// ServiceRepository defines the interface for billable service data operations
type ServiceRepository interface {
	Create(ctx context.Context, svc *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	Update(ctx context.Context, svc *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *ServiceFilterParams) ([]entity.Service, int64, error)
	// CountByType returns how many services reference a type.
	CountByType(ctx context.Context, typeID uuid.UUID) (int64, error)
}

// ServiceFilterParams contains filtering parameters for service queries
type ServiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	TypeID     *uuid.UUID
	Status     *enum.RecordStatus
}
