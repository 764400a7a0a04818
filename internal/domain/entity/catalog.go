package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceType groups billable services (e.g. certificates, renewals)
type ServiceType struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name        string            `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	Status      enum.RecordStatus `gorm:"not null;default:0" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new service type
func (t *ServiceType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceType model
func (ServiceType) TableName() string {
	return "service_types"
}

// Service is a billable item of the catalog
type Service struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Description string            `gorm:"size:255;not null" json:"description"`
	Cost        decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"cost"`
	Status      enum.RecordStatus `gorm:"not null;default:0;index" json:"status"`
	TypeID      *uuid.UUID        `gorm:"type:uuid;index" json:"type_id,omitempty"`
	TypeName    string            `gorm:"size:255" json:"type_name"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// IsActive reports whether the service can be invoiced.
func (s *Service) IsActive() bool {
	return s.Status == enum.StatusActive
}
