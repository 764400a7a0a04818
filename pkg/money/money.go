// Package money holds helpers for Dominican peso amounts backed by shopspring/decimal.
package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is printed in front of formatted amounts.
const CurrencySymbol = "RD$"

var (
	ErrNotFinite = errors.New("money: amount is not a finite number")
	ErrNegative  = errors.New("money: amount must not be negative")
	ErrInvalid   = errors.New("money: amount is not a valid number")
)

// FromFloat converts a float amount, rejecting NaN, infinities and negative values.
func FromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, ErrNotFinite
	}
	if v < 0 {
		return decimal.Zero, ErrNegative
	}
	return decimal.NewFromFloat(v), nil
}

// Parse reads a non-negative amount such as "1,250.50" or "RD$ 300".
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, CurrencySymbol)
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, ErrInvalid
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalid
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	return d, nil
}

// Round rounds an amount to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders an amount as "RD$1,234.56".
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(CurrencySymbol)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
