package cashclosing

import (
	"errors"

	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeOpening = errors.New("cashclosing: opening cash must not be negative")
	ErrNegativeClosing = errors.New("cashclosing: closing cash must not be negative")
)

// Overrides are amounts entered by the operator in place of the derived ones.
// A nil field means "use the derived value".
type Overrides struct {
	OpeningCash *decimal.Decimal
	ClosingCash *decimal.Decimal
}

// Validate rejects negative overrides.
func (o Overrides) Validate() error {
	if o.OpeningCash != nil && o.OpeningCash.IsNegative() {
		return ErrNegativeOpening
	}
	if o.ClosingCash != nil && o.ClosingCash.IsNegative() {
		return ErrNegativeClosing
	}
	return nil
}

// Figures are the computed amounts of a closing, before it is stamped with
// an operator and persisted.
type Figures struct {
	OpeningCash  decimal.Decimal `json:"opening_cash"`
	ClosingCash  decimal.Decimal `json:"closing_cash"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalCash    decimal.Decimal `json:"total_cash"`
	TotalCard    decimal.Decimal `json:"total_card"`
	InvoiceCount int             `json:"invoice_count"`
}

// DefaultOpening is the cash carried over from prior, or zero when there is none.
func DefaultOpening(prior *entity.CashClosing) decimal.Decimal {
	if prior == nil {
		return decimal.Zero
	}
	return prior.ClosingCash
}

// Compute derives the closing figures.
//
//	opening = override, else prior.ClosingCash, else 0
//	closing = override, else opening + summary.TotalCash
//
// An entered closing amount is stored as given; it is not reconciled
// against opening + cash.
func Compute(summary Summary, prior *entity.CashClosing, o Overrides) (Figures, error) {
	if err := o.Validate(); err != nil {
		return Figures{}, err
	}

	opening := DefaultOpening(prior)
	if o.OpeningCash != nil {
		opening = *o.OpeningCash
	}

	closing := opening.Add(summary.TotalCash)
	if o.ClosingCash != nil {
		closing = *o.ClosingCash
	}

	return Figures{
		OpeningCash:  opening,
		ClosingCash:  closing,
		TotalSales:   summary.TotalSales,
		TotalCash:    summary.TotalCash,
		TotalCard:    summary.TotalCard,
		InvoiceCount: summary.Count,
	}, nil
}
