package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogService manages service types and the billable services under them
type CatalogService struct {
	typeRepo    repository.ServiceTypeRepository
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(typeRepo repository.ServiceTypeRepository, serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{
		typeRepo:    typeRepo,
		serviceRepo: serviceRepo,
	}
}

// ServiceTypeInput represents the create/update service type input
type ServiceTypeInput struct {
	Name        string
	Description *string
	Status      enum.RecordStatus
}

// CreateServiceType creates a service type with a unique name
func (s *CatalogService) CreateServiceType(ctx context.Context, input *ServiceTypeInput) (*entity.ServiceType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "Name is required"}})
	}
	if err := s.ensureTypeNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	st := &entity.ServiceType{
		Name:        name,
		Description: input.Description,
		Status:      input.Status,
	}
	if err := s.typeRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetServiceType retrieves a service type by ID
func (s *CatalogService) GetServiceType(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	st, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperror.NewNotFoundError("Service type")
	}
	return st, nil
}

// ListServiceTypes lists service types by name
func (s *CatalogService) ListServiceTypes(ctx context.Context, activeOnly bool) ([]entity.ServiceType, error) {
	types, err := s.typeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []entity.ServiceType{}
	}
	return types, nil
}

// UpdateServiceType updates a service type
func (s *CatalogService) UpdateServiceType(ctx context.Context, id uuid.UUID, input *ServiceTypeInput) (*entity.ServiceType, error) {
	st, err := s.GetServiceType(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "Name is required"}})
	}
	if err := s.ensureTypeNameFree(ctx, name, st.ID); err != nil {
		return nil, err
	}

	st.Name = name
	st.Description = input.Description
	st.Status = input.Status
	if err := s.typeRepo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// DeleteServiceType deletes a type no service refers to
func (s *CatalogService) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetServiceType(ctx, id); err != nil {
		return err
	}
	n, err := s.serviceRepo.CountByType(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.NewConflictError("Service type is still used by services")
	}
	return s.typeRepo.Delete(ctx, id)
}

func (s *CatalogService) ensureTypeNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.typeRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("A service type with this name already exists")
	}
	return nil
}

// ServiceInput represents the create/update service input
type ServiceInput struct {
	Description string
	Cost        decimal.Decimal
	Status      enum.RecordStatus
	TypeID      *uuid.UUID
}

// CreateService creates a billable service, copying the type name onto it
func (s *CatalogService) CreateService(ctx context.Context, input *ServiceInput) (*entity.Service, error) {
	svc := &entity.Service{}
	if err := s.applyServiceInput(ctx, svc, input); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a service by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// ListServices lists services with filters
func (s *CatalogService) ListServices(ctx context.Context, filter *repository.ServiceFilterParams) (*pagination.PaginatedResult[entity.Service], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	filter.Pagination.Validate()

	services, total, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(services, p), nil
}

// UpdateService updates a service
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *ServiceInput) (*entity.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyServiceInput(ctx, svc, input); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService deletes a service; issued invoices keep their copy of it
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}

func (s *CatalogService) applyServiceInput(ctx context.Context, svc *entity.Service, input *ServiceInput) error {
	var fields []apperror.FieldError
	description := strings.TrimSpace(input.Description)
	if description == "" {
		fields = append(fields, apperror.FieldError{Field: "description", Message: "Description is required"})
	}
	if input.Cost.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "cost", Message: "Cost must not be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}

	svc.Description = description
	svc.Cost = input.Cost.Round(2)
	svc.Status = input.Status
	svc.TypeID = nil
	svc.TypeName = ""

	if input.TypeID != nil {
		st, err := s.typeRepo.GetByID(ctx, *input.TypeID)
		if err != nil {
			return err
		}
		if st == nil {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "type_id", Message: "Service type does not exist"}})
		}
		id := st.ID
		svc.TypeID = &id
		svc.TypeName = st.Name
	}
	return nil
}
