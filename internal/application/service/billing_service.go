package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/domain/session"
	"github.com/sangkips/cashdesk-api/internal/logger"
	"github.com/sangkips/cashdesk-api/internal/observability/metrics"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
	"github.com/sangkips/cashdesk-api/pkg/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BillingOptions configures invoice issuing
type BillingOptions struct {
	TaxRate   decimal.Decimal // ITBIS percent
	NCFPrefix string
	Header    entity.ReceiptHeader
	Location  *time.Location
	Now       func() time.Time
}

// BillingService issues invoices and composes their receipts
type BillingService struct {
	invoiceRepo  repository.InvoiceRepository
	serviceRepo  repository.ServiceRepository
	customerRepo repository.CustomerRepository
	opts         BillingOptions
	log          zerolog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	serviceRepo repository.ServiceRepository,
	customerRepo repository.CustomerRepository,
	opts BillingOptions,
) *BillingService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NCFPrefix == "" {
		opts.NCFPrefix = "E31"
	}
	return &BillingService{
		invoiceRepo:  invoiceRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		opts:         opts,
		log:          logger.WithComponent("billing"),
	}
}

// InvoiceCustomerInput is a customer typed in at the counter
type InvoiceCustomerInput struct {
	Name    string
	RNC     string
	Address string
	Phone   string
}

// CreateInvoiceInput represents the create invoice input. Either CustomerID
// or Customer identifies who is billed.
type CreateInvoiceInput struct {
	ServiceID             uuid.UUID
	Quantity              int
	CustomerID            *uuid.UUID
	Customer              *InvoiceCustomerInput
	RequiresFiscalReceipt bool
	PaymentMethod         enum.PaymentMethod
}

// InvoiceOutput is an issued invoice with its receipt
type InvoiceOutput struct {
	Invoice *entity.Invoice `json:"invoice"`
	Receipt *entity.Receipt `json:"receipt"`
}

// Amounts are the money figures of an invoice
type Amounts struct {
	Base  decimal.Decimal
	Rate  decimal.Decimal
	Tax   decimal.Decimal
	Total decimal.Decimal
}

// ComputeAmounts applies ITBIS at rate percent when a fiscal receipt is
// required; otherwise the tax is zero and the total equals the base.
func ComputeAmounts(base, rate decimal.Decimal, fiscal bool) Amounts {
	base = base.Round(2)
	tax := decimal.Zero
	if fiscal {
		tax = base.Mul(rate).Div(hundred).Round(2)
	}
	return Amounts{Base: base, Rate: rate, Tax: tax, Total: base.Add(tax)}
}

// CreateInvoice issues an invoice for one catalog service
func (s *BillingService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*InvoiceOutput, error) {
	if !input.PaymentMethod.IsKnown() {
		return nil, apperror.NewInvalidInputError("Payment method must be cash or card",
			apperror.FieldError{Field: "payment_method", Message: "must be cash or card"})
	}
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, apperror.NewInvalidInputError("Quantity must be positive",
			apperror.FieldError{Field: "quantity", Message: "must be positive"})
	}

	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, apperror.NewDataUnavailableError("Could not read the service catalog")
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	if !svc.IsActive() {
		return nil, apperror.NewInvalidInputError("Service is inactive and cannot be invoiced")
	}

	snapshot, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now().In(s.opts.Location)
	inv := &entity.Invoice{
		VerificationCode:      utils.NewVerificationCode(),
		RequiresFiscalReceipt: input.RequiresFiscalReceipt,
		CustomerID:            snapshot.ID,
		CustomerName:          snapshot.Name,
		CustomerRNC:           snapshot.RNC,
		CustomerAddress:       snapshot.Address,
		CustomerPhone:         snapshot.Phone,
		PaymentMethod:         input.PaymentMethod,
		CreatedAt:             now,
	}

	subtotal := svc.Cost.Mul(decimal.NewFromInt(int64(qty)))
	amounts := ComputeAmounts(subtotal, s.opts.TaxRate, input.RequiresFiscalReceipt)
	inv.BaseAmount = amounts.Base
	inv.TaxRate = amounts.Rate
	inv.TaxAmount = amounts.Tax
	inv.TotalAmount = amounts.Total

	description := svc.Description
	if description == "" {
		description = svc.TypeName
	}
	serviceID := svc.ID
	inv.Items = []entity.InvoiceItem{{
		ServiceID:   &serviceID,
		Description: description,
		Quantity:    qty,
		UnitPrice:   svc.Cost,
		Subtotal:    amounts.Base,
	}}

	sess, _ := session.FromContext(ctx)
	inv.CreatedByID = sess.OperatorID()
	inv.CreatedByName = sess.OperatorName()

	if err := s.invoiceRepo.CreateNumbered(ctx, inv, s.assignNumbers(now.Year())); err != nil {
		s.log.Error().Err(err).Str("number", inv.Number).Msg("invoice not stored")
		return nil, apperror.NewStorageUnavailableError("The invoice could not be saved")
	}

	metrics.IncInvoiceCreated(inv.PaymentMethod.String(), inv.TotalAmount.InexactFloat64())
	s.log.Info().
		Str("number", inv.Number).
		Str("method", inv.PaymentMethod.String()).
		Str("total", inv.TotalAmount.StringFixed(2)).
		Str("operator", inv.CreatedByName).
		Msg("invoice issued")

	return &InvoiceOutput{Invoice: inv, Receipt: s.Receipt(inv)}, nil
}

// assignNumbers draws the invoice number and, for fiscal invoices, the NCF.
func (s *BillingService) assignNumbers(year int) repository.NumberAssigner {
	return func(ctx context.Context, seq repository.FiscalSequenceRepository, inv *entity.Invoice) error {
		n, err := seq.Next(ctx, utils.InvoiceSeries(year))
		if err != nil {
			return fmt.Errorf("reserve invoice number: %w", err)
		}
		inv.Number = utils.FormatInvoiceNo(year, n)

		if !inv.RequiresFiscalReceipt {
			return nil
		}
		n, err = seq.Next(ctx, s.opts.NCFPrefix)
		if err != nil {
			return fmt.Errorf("reserve fiscal number: %w", err)
		}
		ncf := utils.FormatNCF(s.opts.NCFPrefix, n)
		inv.FiscalNumber = &ncf
		return nil
	}
}

type customerSnapshot struct {
	ID      *uuid.UUID
	Name    string
	RNC     string
	Address string
	Phone   string
}

func (s *BillingService) resolveCustomer(ctx context.Context, input *CreateInvoiceInput) (*customerSnapshot, error) {
	if input.CustomerID != nil {
		c, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, apperror.NewDataUnavailableError("Could not read customers")
		}
		if c == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		id := c.ID
		return &customerSnapshot{
			ID:      &id,
			Name:    c.Name,
			RNC:     derefString(c.RNC),
			Address: derefString(c.Address),
			Phone:   derefString(c.Phone),
		}, nil
	}

	if input.Customer == nil || strings.TrimSpace(input.Customer.Name) == "" {
		return nil, apperror.NewInvalidInputError("Customer name is required",
			apperror.FieldError{Field: "customer.name", Message: "is required"})
	}
	return &customerSnapshot{
		Name:    strings.TrimSpace(input.Customer.Name),
		RNC:     strings.TrimSpace(input.Customer.RNC),
		Address: strings.TrimSpace(input.Customer.Address),
		Phone:   strings.TrimSpace(input.Customer.Phone),
	}, nil
}

// GetInvoice retrieves an invoice with its items
func (s *BillingService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewDataUnavailableError("Could not read invoices")
	}
	if inv == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return inv, nil
}

// ListInvoices lists invoices, newest first
func (s *BillingService) ListInvoices(ctx context.Context, filter *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	filter.Pagination.Validate()

	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.NewDataUnavailableError("Could not read invoices")
	}
	p := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, p), nil
}

// GetReceipt composes the receipt of a stored invoice
func (s *BillingService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Receipt(inv), nil
}

// Receipt composes the receipt of inv with the configured issuer header
func (s *BillingService) Receipt(inv *entity.Invoice) *entity.Receipt {
	return entity.NewReceipt(inv, s.opts.Header, s.opts.Location)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
