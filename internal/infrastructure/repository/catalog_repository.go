package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type serviceTypeRepository struct {
	db *gorm.DB
}

// NewServiceTypeRepository creates a new service type repository
func NewServiceTypeRepository(db *gorm.DB) domainRepo.ServiceTypeRepository {
	return &serviceTypeRepository{db: db}
}

func (r *serviceTypeRepository) Create(ctx context.Context, st *entity.ServiceType) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *serviceTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	var st entity.ServiceType
	err := r.db.WithContext(ctx).First(&st, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &st, err
}

func (r *serviceTypeRepository) GetByName(ctx context.Context, name string) (*entity.ServiceType, error) {
	var st entity.ServiceType
	err := r.db.WithContext(ctx).First(&st, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &st, err
}

func (r *serviceTypeRepository) Update(ctx context.Context, st *entity.ServiceType) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *serviceTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ServiceType{}, "id = ?", id).Error
}

func (r *serviceTypeRepository) List(ctx context.Context, activeOnly bool) ([]entity.ServiceType, error) {
	var types []entity.ServiceType
	query := r.db.WithContext(ctx).Model(&entity.ServiceType{})
	if activeOnly {
		query = query.Where("status = ?", enum.StatusActive)
	}
	err := query.Order("name ASC").Find(&types).Error
	return types, err
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new billable service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *entity.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var svc entity.Service
	err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &svc, err
}

func (r *serviceRepository) Update(ctx context.Context, svc *entity.Service) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Service{}, "id = ?", id).Error
}

func (r *serviceRepository) List(ctx context.Context, filter *domainRepo.ServiceFilterParams) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Service{}).
		Scopes(SearchScope(filter.Search, "description", "type_name"))

	if filter.TypeID != nil {
		query = query.Where("type_id = ?", *filter.TypeID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(PageScope(filter.Pagination)).
		Order("description ASC").
		Find(&services).Error

	return services, total, err
}

func (r *serviceRepository) CountByType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Service{}).
		Where("type_id = ?", typeID).
		Count(&n).Error
	return n, err
}
