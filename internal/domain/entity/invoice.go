package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is an issued sale. Invoices are never modified after creation.
type Invoice struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Number                string             `gorm:"size:50;uniqueIndex;not null" json:"number"`
	FiscalNumber          *string            `gorm:"size:20;uniqueIndex" json:"fiscal_number,omitempty"`
	VerificationCode      string             `gorm:"size:20;not null" json:"verification_code"`
	RequiresFiscalReceipt bool               `gorm:"not null;default:false" json:"requires_fiscal_receipt"`
	CustomerID            *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName          string             `gorm:"size:255" json:"customer_name"`
	CustomerRNC           string             `gorm:"size:20;column:customer_rnc" json:"customer_rnc,omitempty"`
	CustomerAddress       string             `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerPhone         string             `gorm:"size:50" json:"customer_phone,omitempty"`
	PaymentMethod         enum.PaymentMethod `gorm:"not null;default:0;index" json:"payment_method"`
	BaseAmount            decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"base_amount"`
	TaxRate               decimal.Decimal    `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	TaxAmount             decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	TotalAmount           decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	CreatedByID           *uuid.UUID         `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedByName         string             `gorm:"size:255" json:"created_by_name"`
	CreatedAt             time.Time          `gorm:"not null;index" json:"created_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a billed line of an invoice
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ServiceID   *uuid.UUID      `gorm:"type:uuid" json:"service_id,omitempty"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
