package repository

import "context"

// FiscalSequenceRepository hands out strictly increasing numbers per series.
// Invoices draw theirs through InvoiceRepository.CreateNumbered so a failed
// write does not consume them.
type FiscalSequenceRepository interface {
	// Next reserves and returns the next value of series, starting at 1.
	Next(ctx context.Context, series string) (int64, error)
	// Current returns the last value handed out, 0 when unused.
	Current(ctx context.Context, series string) (int64, error)
}
