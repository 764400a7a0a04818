// Package cashclosing holds the pure end-of-day cash calculations:
// folding invoices into per-method totals and deriving opening/closing cash.
package cashclosing

import (
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Summary is the per-payment-method breakdown of a set of invoices.
// TotalSales >= TotalCash + TotalCard; the gap is invoices without a known method.
type Summary struct {
	TotalSales decimal.Decimal `json:"total_sales"`
	TotalCash  decimal.Decimal `json:"total_cash"`
	TotalCard  decimal.Decimal `json:"total_card"`
	Count      int             `json:"count"`
}

// ZeroSummary is the summary of an empty invoice set.
func ZeroSummary() Summary {
	return Summary{
		TotalSales: decimal.Zero,
		TotalCash:  decimal.Zero,
		TotalCard:  decimal.Zero,
	}
}

// Unclassified is the part of TotalSales paid by neither cash nor card.
func (s Summary) Unclassified() decimal.Decimal {
	return s.TotalSales.Sub(s.TotalCash).Sub(s.TotalCard)
}

// Summarize folds invoices into a Summary. Every invoice adds to TotalSales;
// only cash and card invoices add to their own bucket.
func Summarize(invoices []entity.Invoice) Summary {
	s := ZeroSummary()
	for i := range invoices {
		s = s.Add(&invoices[i])
	}
	return s
}

// Add returns s with one more invoice folded in.
func (s Summary) Add(inv *entity.Invoice) Summary {
	s.TotalSales = s.TotalSales.Add(inv.TotalAmount)
	switch inv.PaymentMethod {
	case enum.PaymentMethodCash:
		s.TotalCash = s.TotalCash.Add(inv.TotalAmount)
	case enum.PaymentMethodCard:
		s.TotalCard = s.TotalCard.Add(inv.TotalAmount)
	}
	s.Count++
	return s
}
