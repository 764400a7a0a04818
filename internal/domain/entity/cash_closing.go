package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashClosing is the persisted result of one end-of-day cash count.
// Date is when the count was taken; BusinessDay is the day whose invoices
// it summarizes. Records are created once and never updated.
type CashClosing struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date           time.Time       `gorm:"not null;index" json:"date"`
	BusinessDay    time.Time       `gorm:"type:date;not null;index" json:"business_day"`
	OperatorID     *uuid.UUID      `gorm:"type:uuid;index" json:"operator_id,omitempty"`
	OperatorName   string          `gorm:"size:255;not null" json:"operator_name"`
	OpeningCash    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"opening_cash"`
	ClosingCash    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"closing_cash"`
	TotalSales     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_sales"`
	TotalCash      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_cash"`
	TotalCard      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_card"`
	InvoiceCount   int             `gorm:"not null;default:0" json:"invoice_count"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	PriorClosingID *uuid.UUID      `gorm:"type:uuid" json:"prior_closing_id,omitempty"`
	CreatedAt      time.Time       `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new closing
func (c *CashClosing) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashClosing model
func (CashClosing) TableName() string {
	return "cash_closings"
}
