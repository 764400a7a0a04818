package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the issuing organisation printed at the top of a receipt.
type ReceiptHeader struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// ReceiptCustomer is the customer block of a receipt.
type ReceiptCustomer struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// FiscalSummary carries the taxable base, ITBIS and total of a receipt.
type FiscalSummary struct {
	Gross   decimal.Decimal `json:"gross"`
	TaxRate decimal.Decimal `json:"tax_rate"`
	Tax     decimal.Decimal `json:"tax"`
	Total   decimal.Decimal `json:"total"`
}

// Receipt is a value object representing a printable invoice receipt.
// It is NOT a database entity: it is composed from an invoice at read time.
type Receipt struct {
	Header           ReceiptHeader   `json:"header"`
	InvoiceNo        string          `json:"invoice_no"`
	FiscalNumber     string          `json:"fiscal_number,omitempty"`
	VerificationCode string          `json:"verification_code"`
	Date             string          `json:"date"`
	Cashier          string          `json:"cashier,omitempty"`
	Customer         ReceiptCustomer `json:"customer"`
	PaymentMethod    string          `json:"payment_method"`
	Items            []ReceiptItem   `json:"items"`
	Summary          FiscalSummary   `json:"summary"`
}

// ReceiptDateLayout is how receipt timestamps are rendered.
const ReceiptDateLayout = "02/01/2006 15:04"

// NewReceipt composes the receipt of an invoice, rendering times in loc.
func NewReceipt(inv *Invoice, header ReceiptHeader, loc *time.Location) *Receipt {
	if loc == nil {
		loc = time.UTC
	}
	r := &Receipt{
		Header:           header,
		InvoiceNo:        inv.Number,
		VerificationCode: inv.VerificationCode,
		Date:             inv.CreatedAt.In(loc).Format(ReceiptDateLayout),
		Cashier:          inv.CreatedByName,
		Customer: ReceiptCustomer{
			Name:    inv.CustomerName,
			TaxID:   inv.CustomerRNC,
			Address: inv.CustomerAddress,
			Phone:   inv.CustomerPhone,
		},
		PaymentMethod: inv.PaymentMethod.Label(),
		Items:         make([]ReceiptItem, 0, len(inv.Items)),
		Summary: FiscalSummary{
			Gross:   inv.BaseAmount,
			TaxRate: inv.TaxRate,
			Tax:     inv.TaxAmount,
			Total:   inv.TotalAmount,
		},
	}
	if inv.FiscalNumber != nil {
		r.FiscalNumber = *inv.FiscalNumber
	}
	for _, it := range inv.Items {
		r.Items = append(r.Items, ReceiptItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return r
}
