package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InvoiceSeries is the sequence series used for invoice numbers of a year.
func InvoiceSeries(year int) string {
	return fmt.Sprintf("FAC-%d", year)
}

// FormatInvoiceNo builds an invoice number such as FAC-2024-000042.
func FormatInvoiceNo(year int, seq int64) string {
	return fmt.Sprintf("%s-%06d", InvoiceSeries(year), seq)
}

// FormatNCF builds a fiscal receipt number (NCF) such as E310000000042.
func FormatNCF(prefix string, seq int64) string {
	return fmt.Sprintf("%s%010d", strings.ToUpper(prefix), seq)
}

// NewVerificationCode returns a short uppercase code printed on fiscal receipts.
func NewVerificationCode() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(id[:12])
}
