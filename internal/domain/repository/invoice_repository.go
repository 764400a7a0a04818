package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Invoices are append-only; there is no Update or Delete.
type InvoiceRepository interface {
	// Create writes the invoice together with its items in one transaction.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// CreateNumbered runs assign and then writes the invoice as one unit.
	// Numbers drawn by assign are only consumed when the write succeeds.
	CreateNumbered(ctx context.Context, invoice *entity.Invoice, assign NumberAssigner) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// ListInRange returns every invoice with start <= created_at <= end.
	ListInRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error)
	List(ctx context.Context, filter *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// NumberAssigner fills in an invoice's numbers from seq, which shares the
// invoice write's transaction.
type NumberAssigner func(ctx context.Context, seq FiscalSequenceRepository, invoice *entity.Invoice) error

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentMethod *enum.PaymentMethod
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}
