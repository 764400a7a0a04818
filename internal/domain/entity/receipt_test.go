package entity

import (
	"testing"
	"time"

	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewReceipt(t *testing.T) {
	ncf := "E310000000007"
	loc := time.FixedZone("AST", -4*3600)
	inv := &Invoice{
		Number:           "FAC-2024-000007",
		FiscalNumber:     &ncf,
		VerificationCode: "ABC123DEF456",
		CustomerName:     "Juan Perez",
		CustomerRNC:      "001-0000000-1",
		PaymentMethod:    enum.PaymentMethodCash,
		BaseAmount:       decimal.NewFromInt(500),
		TaxRate:          decimal.NewFromInt(18),
		TaxAmount:        decimal.NewFromInt(90),
		TotalAmount:      decimal.NewFromInt(590),
		CreatedByName:    "Ana",
		CreatedAt:        time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Items: []InvoiceItem{
			{Description: "Acta de nacimiento", Quantity: 1, UnitPrice: decimal.NewFromInt(500), Subtotal: decimal.NewFromInt(500)},
		},
	}

	r := NewReceipt(inv, ReceiptHeader{Name: "Oficina Central"}, loc)

	assert.Equal(t, "05/03/2024 10:30", r.Date)
	assert.Equal(t, ncf, r.FiscalNumber)
	assert.Equal(t, "Efectivo", r.PaymentMethod)
	assert.Equal(t, "Juan Perez", r.Customer.Name)
	assert.Len(t, r.Items, 1)
	assert.True(t, r.Summary.Total.Equal(decimal.NewFromInt(590)))
}

func TestNewReceiptWithoutFiscalNumber(t *testing.T) {
	r := NewReceipt(&Invoice{Number: "FAC-2024-000001", CreatedAt: time.Now()}, ReceiptHeader{}, nil)
	assert.Empty(t, r.FiscalNumber)
	assert.NotNil(t, r.Items)
	assert.Equal(t, "No especificado", r.PaymentMethod)
}
