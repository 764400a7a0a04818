package service

import (
	"context"
	"time"

	"github.com/sangkips/cashdesk-api/internal/domain/cashclosing"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/logger"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
)

// InvoiceAggregator totals the invoices of a time window by payment method
type InvoiceAggregator struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceAggregator creates a new invoice aggregator
func NewInvoiceAggregator(invoiceRepo repository.InvoiceRepository) *InvoiceAggregator {
	return &InvoiceAggregator{invoiceRepo: invoiceRepo}
}

// Summarize totals every invoice with start <= created_at <= end.
func (a *InvoiceAggregator) Summarize(ctx context.Context, start, end time.Time) (cashclosing.Summary, error) {
	invoices, err := a.invoiceRepo.ListInRange(ctx, start, end)
	if err != nil {
		log := logger.WithComponent("aggregator")
		log.Error().Err(err).Time("start", start).Time("end", end).Msg("invoice read failed")
		return cashclosing.Summary{}, apperror.NewDataUnavailableError("Invoices could not be read; sales totals are unavailable")
	}
	return cashclosing.Summarize(invoices), nil
}
